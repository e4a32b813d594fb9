package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
)

const (
	UsersKey   = "users"
	SessionKey = "currentUser"
)

// Directory is the mock account directory of one session. Passwords are kept
// and compared as plain text; it only simulates sign-in.
type Directory struct {
	store database.Store
	log   *zap.Logger
}

func NewDirectory(store database.Store, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{store: store, log: log}
}

// Register adds an account and signs it in. It fails with
// ErrDuplicateAccount when the email is already registered.
func (d *Directory) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	account := models.UserAccount{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := models.Validate(account); err != nil {
		return models.Session{}, apperrors.Wrap(apperrors.ErrValidation, err)
	}

	err := database.UpdateJSON(ctx, d.store, UsersKey, d.log, func(users []models.UserAccount) ([]models.UserAccount, error) {
		users = d.valid(users)
		for _, u := range users {
			if u.Email == account.Email {
				return nil, apperrors.ErrDuplicateAccount
			}
		}
		return append(users, account), nil
	})
	if err != nil {
		return models.Session{}, storeError(err)
	}

	session := models.Session{Name: account.Name, Email: account.Email}
	if err := d.setSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	d.log.Info("Account registered", zap.String("email", account.Email))
	return session, nil
}

// Login signs in the account whose email and password both match exactly.
// Surrounding whitespace is trimmed from email first, the same normalisation
// Register applies before storing it; the password is compared as given.
func (d *Directory) Login(ctx context.Context, email, password string) (models.Session, error) {
	users, err := d.Accounts(ctx)
	if err != nil {
		return models.Session{}, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email == email && u.Password == password {
			session := models.Session{Name: u.Name, Email: u.Email}
			if err := d.setSession(ctx, session); err != nil {
				return models.Session{}, err
			}
			return session, nil
		}
	}
	return models.Session{}, apperrors.ErrInvalidCredentials
}

// Logout clears the session. It is a no-op when nobody is signed in.
func (d *Directory) Logout(ctx context.Context) error {
	if err := d.store.Delete(ctx, SessionKey); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// Current returns the signed-in user, if any. A corrupt session record reads
// as signed out.
func (d *Directory) Current(ctx context.Context) (models.Session, bool, error) {
	var session models.Session
	ok, err := database.LoadJSON(ctx, d.store, SessionKey, &session, d.log)
	if err != nil {
		return models.Session{}, false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !ok {
		return models.Session{}, false, nil
	}
	if err := models.Validate(session); err != nil {
		d.log.Warn("Discarding invalid session record", zap.Error(err))
		return models.Session{}, false, nil
	}
	return session, true, nil
}

// Accounts returns the valid records of the directory.
func (d *Directory) Accounts(ctx context.Context) ([]models.UserAccount, error) {
	var users []models.UserAccount
	ok, err := database.LoadJSON(ctx, d.store, UsersKey, &users, d.log)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !ok {
		return []models.UserAccount{}, nil
	}
	return d.valid(users), nil
}

func (d *Directory) setSession(ctx context.Context, session models.Session) error {
	if err := database.SaveJSON(ctx, d.store, SessionKey, session); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

func (d *Directory) valid(users []models.UserAccount) []models.UserAccount {
	out := make([]models.UserAccount, 0, len(users))
	for _, u := range users {
		if err := models.Validate(u); err != nil {
			d.log.Warn("Dropping invalid account record", zap.Error(err))
			continue
		}
		out = append(out, u)
	}
	return out
}

func storeError(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrStore, err)
}
