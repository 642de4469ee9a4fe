// Package services contains application services for the IgniteGym client.
//
// ProfileService coordinates profile updates: validation, optional avatar
// upload, the remote call and the commit into the session store.
// CatalogService wraps the exercise and history endpoints and reports their
// failures to the notifier.
//
// Every error returned from this package is an *apperr.Error that has already
// been shown to the user, except validation failures (rendered inline by the
// caller) and results discarded because ctx was canceled.
package services
