// Package session owns the identity of the signed-in user.
//
// A Store is the single authoritative holder of the current user. It moves
// between four states:
//
//	Unauthenticated --SignIn/SignUp--> Authenticating --ok--> Authenticated
//	                                                  \-fail-> AuthError
//	Authenticated --SignOut--> Unauthenticated
//
// Restore enters Authenticated directly from a persisted user without any
// network call. Profile changes go through UpdateUser, which writes through
// to storage before the in-memory user changes.
//
// Sign-in, sign-up and profile updates share one busy slot (see Acquire): a
// second operation started while one is in flight is rejected with a busy
// error instead of being queued. SignOut is never rejected; it invalidates
// every in-flight operation so that a late response cannot resurrect the
// session. An operation whose context is canceled before its response
// arrives leaves the state as it was before the attempt.
package session
