package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"reflect"
	"strconv"

	"github.com/dmitrijs2005/mymemory/internal/client/auth"
	"github.com/dmitrijs2005/mymemory/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/mymemory/internal/logging"
)

// UserSession is a point-in-time copy of every session field.
type UserSession struct {
	LoginID    int64
	Account    *string
	Name       *string
	HasProfile bool
	LoggedIn   bool
}

type Store struct {
	repo     preferences.Repository
	auth     auth.Authenticator
	log      logging.Logger
	fallback image.Image
	maxDim   int
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithFallbackImage replaces the drawn default avatar. A nil image is ignored.
func WithFallbackImage(img image.Image) Option {
	return func(s *Store) {
		if img != nil {
			s.fallback = img
		}
	}
}

// WithMaxDimension bounds stored profile images; n <= 0 stores them as given.
func WithMaxDimension(n int) Option {
	return func(s *Store) { s.maxDim = n }
}

func NewStore(repo preferences.Repository, authenticator auth.Authenticator, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		auth:     authenticator,
		log:      logging.NewNopLogger(),
		fallback: DefaultProfileImage(),
		maxDim:   DefaultMaxDimension,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "preference read failed", "key", key, "error", err)
		return nil, false
	}
	return v, v != nil
}

func (s *Store) setKey(ctx context.Context, key string, value []byte) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		return err
	}
	if err := s.repo.Flush(ctx); err != nil {
		return fmt.Errorf("flush after set %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteKey(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.repo.Flush(ctx); err != nil {
		return fmt.Errorf("flush after delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) setOptional(ctx context.Context, key string, v *string) error {
	if v == nil {
		return s.deleteKey(ctx, key)
	}
	return s.setKey(ctx, key, []byte(*v))
}

// LoginID returns the stored user id, or 0 when unset or unreadable.
func (s *Store) LoginID(ctx context.Context) int64 {
	raw, ok := s.read(ctx, KeyLoginID)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		s.log.Warn(ctx, "stored login id is not a number", "value", string(raw))
		return 0
	}
	return id
}

func (s *Store) SetLoginID(ctx context.Context, v int64) error {
	return s.setKey(ctx, KeyLoginID, []byte(strconv.FormatInt(v, 10)))
}

// Account returns the stored account and whether one is present.
func (s *Store) Account(ctx context.Context) (string, bool) {
	raw, ok := s.read(ctx, KeyAccount)
	return string(raw), ok
}

// SetAccount stores v, or removes the account when v is nil.
func (s *Store) SetAccount(ctx context.Context, v *string) error {
	return s.setOptional(ctx, KeyAccount, v)
}

func (s *Store) Name(ctx context.Context) (string, bool) {
	raw, ok := s.read(ctx, KeyName)
	return string(raw), ok
}

// SetName stores v, or removes the name when v is nil.
func (s *Store) SetName(ctx context.Context, v *string) error {
	return s.setOptional(ctx, KeyName, v)
}

// StoredProfileImage decodes the stored profile image. ok is false when none
// is stored or it cannot be decoded.
func (s *Store) StoredProfileImage(ctx context.Context) (img image.Image, ok bool) {
	raw, ok := s.read(ctx, KeyProfile)
	if !ok {
		return nil, false
	}
	img, err := DecodeImage(raw)
	if err != nil {
		s.log.Debug(ctx, "stored profile image unreadable, using fallback", "error", err)
		return nil, false
	}
	return img, true
}

// ProfileImage returns the stored profile image or the fallback image.
func (s *Store) ProfileImage(ctx context.Context) image.Image {
	if img, ok := s.StoredProfileImage(ctx); ok {
		return img
	}
	return s.fallback
}

// SetProfileImage stores img as PNG, scaled down first when it exceeds the
// configured maximum dimension. A nil img, including a typed nil pointer, or
// an img with empty bounds removes the stored image.
func (s *Store) SetProfileImage(ctx context.Context, img image.Image) error {
	if isAbsentImage(img) {
		return s.deleteKey(ctx, KeyProfile)
	}
	data, err := EncodeImage(FitWithin(img, s.maxDim))
	if err != nil {
		return err
	}
	if err := s.setKey(ctx, KeyProfile, data); err != nil {
		return err
	}
	s.log.Debug(ctx, "profile image stored", "bytes", len(data))
	return nil
}

func isAbsentImage(img image.Image) bool {
	if img == nil {
		return true
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}
	return img.Bounds().Empty()
}

// TutorialSeen reports whether the first-run tutorial was completed.
func (s *Store) TutorialSeen(ctx context.Context) bool {
	raw, ok := s.read(ctx, KeyTutorial)
	return ok && string(raw) == "1"
}

func (s *Store) SetTutorialSeen(ctx context.Context, seen bool) error {
	v := "0"
	if seen {
		v = "1"
	}
	return s.setKey(ctx, KeyTutorial, []byte(v))
}

// IsLoggedIn is true only when both a non-zero id and an account are stored.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	if s.LoginID(ctx) == 0 {
		return false
	}
	_, ok := s.Account(ctx)
	return ok
}

// Snapshot reads every session field.
func (s *Store) Snapshot(ctx context.Context) UserSession {
	us := UserSession{LoginID: s.LoginID(ctx)}
	if v, ok := s.Account(ctx); ok {
		us.Account = &v
	}
	if v, ok := s.Name(ctx); ok {
		us.Name = &v
	}
	_, us.HasProfile = s.StoredProfileImage(ctx)
	us.LoggedIn = us.LoginID != 0 && us.Account != nil
	return us
}

// Login checks the credentials and, on success, stores the user's id,
// account and display name together. Wrong credentials return (false, nil)
// and leave the store untouched.
func (s *Store) Login(ctx context.Context, account, password string) (bool, error) {
	id, err := s.auth.Authenticate(ctx, account, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.log.Info(ctx, "login rejected", "account", account)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("authenticate: %w", err)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx preferences.Repository) error {
		if err := tx.Set(ctx, KeyLoginID, []byte(strconv.FormatInt(id.ID, 10))); err != nil {
			return err
		}
		if err := tx.Set(ctx, KeyAccount, []byte(id.Account)); err != nil {
			return err
		}
		return tx.Set(ctx, KeyName, []byte(id.Name))
	})
	if err != nil {
		return false, fmt.Errorf("store session: %w", err)
	}
	if err := s.repo.Flush(ctx); err != nil {
		return false, fmt.Errorf("flush session: %w", err)
	}

	s.log.Info(ctx, "logged in", "account", id.Account, "login_id", id.ID)
	return true, nil
}

// Logout removes id, account, name and profile image. It succeeds when
// already logged out. The tutorial flag is kept.
func (s *Store) Logout(ctx context.Context) (bool, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx preferences.Repository) error {
		for _, k := range sessionKeys {
			if err := tx.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("clear session: %w", err)
	}
	if err := s.repo.Flush(ctx); err != nil {
		return false, fmt.Errorf("flush session: %w", err)
	}

	s.log.Info(ctx, "logged out")
	return true, nil
}
