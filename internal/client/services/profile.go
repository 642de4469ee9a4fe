package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/avatar"
	"github.com/dmitrijs2005/ignitegym/internal/client/client"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
	"github.com/dmitrijs2005/ignitegym/internal/client/session"
	"github.com/dmitrijs2005/ignitegym/internal/client/validation"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

const (
	MessageProfileUpdated = "Profile updated successfully"
	messageNotSignedIn    = "You are not signed in."
	messageAvatarUpload   = "Unable to upload the avatar."
)

// ProfileService updates the signed-in user's profile.
type ProfileService interface {
	// UpdateProfile validates form, uploads pending (if any), submits the
	// update and commits name and avatar to the session. The session user
	// is changed only when every step succeeded.
	UpdateProfile(ctx context.Context, form models.ProfileEditForm, pending *models.PendingAvatar) (models.User, error)
}

type profileService struct {
	store    *session.Store
	client   client.AuthClient
	uploader avatar.Uploader
	notifier notify.Notifier
	log      logging.Logger
}

// NewProfileService builds a ProfileService. uploader may be nil, in which
// case the pending avatar reference is submitted as is.
func NewProfileService(store *session.Store, c client.AuthClient, uploader avatar.Uploader, n notify.Notifier, log logging.Logger) ProfileService {
	return &profileService{store: store, client: c, uploader: uploader, notifier: n, log: log}
}

func (p *profileService) UpdateProfile(ctx context.Context, form models.ProfileEditForm, pending *models.PendingAvatar) (models.User, error) {
	if err := validation.ProfileEdit(form).Err(); err != nil {
		return models.User{}, err
	}

	lease, err := p.store.Acquire(ctx, "update profile")
	if err != nil {
		return models.User{}, err
	}
	defer lease.Release()

	current := p.store.User()
	if !current.IsAuthenticated() {
		return models.User{}, p.fail(ctx, apperr.Domain(messageNotSignedIn))
	}

	req := models.UpdateProfileRequest{
		Name:        form.Name,
		OldPassword: form.OldPassword,
	}
	if form.ChangesPassword() {
		req.Password = form.NewPassword
	}

	if pending != nil && pending.Ref != "" {
		ref := pending.Ref
		if p.uploader != nil {
			ref, err = p.uploader.Upload(ctx, current.ID, pending.Ref)
			if ctx.Err() != nil {
				return models.User{}, p.abandon(ctx)
			}
			if err != nil {
				p.log.Error(ctx, "avatar upload failed", "error", err)
				return models.User{}, p.fail(ctx, apperr.Classify(err, messageAvatarUpload))
			}
		}
		req.Avatar = ref
	}

	echoed, err := p.client.UpdateProfile(ctx, req)
	if ctx.Err() != nil {
		return models.User{}, p.abandon(ctx)
	}
	if err != nil {
		return models.User{}, p.fail(ctx, apperr.Classify(err, apperr.FallbackProfileUpdate))
	}

	updated := merge(current, req, echoed)
	if err := lease.UpdateUser(ctx, updated); err != nil {
		if errors.Is(err, session.ErrSessionChanged) {
			p.log.Info(ctx, "profile update discarded, session changed meanwhile")
			return models.User{}, apperr.Unknown(err, apperr.FallbackProfileUpdate)
		}
		p.log.Error(ctx, "failed to commit profile update", "error", err)
		return models.User{}, p.fail(ctx, apperr.Classify(err, apperr.FallbackProfileUpdate))
	}

	p.log.Info(ctx, "profile updated", "user_id", updated.ID)
	p.notifier.Show(ctx, MessageProfileUpdated, apperr.SeveritySuccess)
	return updated, nil
}

// merge applies the submitted name and avatar to current. Values echoed by
// the server win when present; id and email never change here.
func merge(current models.User, req models.UpdateProfileRequest, echoed models.User) models.User {
	u := current
	u.Name = req.Name
	if req.Avatar != "" {
		u.AvatarRef = req.Avatar
	}
	if echoed.ID == current.ID {
		if echoed.Name != "" {
			u.Name = echoed.Name
		}
		if echoed.AvatarRef != "" {
			u.AvatarRef = echoed.AvatarRef
		}
	}
	return u
}

func (p *profileService) fail(ctx context.Context, e *apperr.Error) error {
	p.log.Warn(ctx, "profile update failed", "kind", e.Kind, "error", e)
	notify.Error(ctx, p.notifier, e)
	return e
}

func (p *profileService) abandon(ctx context.Context) error {
	p.log.Info(ctx, "profile update abandoned by caller")
	return apperr.Unknown(ctx.Err(), apperr.FallbackProfileUpdate)
}
