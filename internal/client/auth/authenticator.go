// Package auth decides whether a pair of credentials identifies a user.
//
// The session store only depends on the Authenticator interface, so the
// static placeholder below can be replaced by a remote check without touching
// session state handling.
package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mymemory/internal/common"
	"github.com/dmitrijs2005/mymemory/internal/cryptox"
)

// ErrInvalidCredentials is returned when account or password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is what a successful authentication yields.
type Identity struct {
	ID      int64
	Account string
	Name    string
}

type Authenticator interface {
	Authenticate(ctx context.Context, account, password string) (Identity, error)
}

// Placeholder credential accepted by NewDefaultAuthenticator.
const (
	DefaultAccount  = "jihyea@naver.com"
	DefaultPassword = "1234"
	DefaultID       = 100
	DefaultName     = "지헤"
)

// StaticAuthenticator accepts exactly one account. The password is kept only
// as an argon2id verifier.
type StaticAuthenticator struct {
	identity Identity
	salt     []byte
	verifier []byte
}

// NewStaticAuthenticator returns an authenticator that accepts password for
// identity.Account and yields identity.
func NewStaticAuthenticator(identity Identity, password string) *StaticAuthenticator {
	salt := common.GenerateRandByteArray(16)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return &StaticAuthenticator{
		identity: identity,
		salt:     salt,
		verifier: cryptox.MakeVerifier(cryptox.DeriveKey(pw, salt)),
	}
}

// NewDefaultAuthenticator stands in for the future server-side login.
func NewDefaultAuthenticator() *StaticAuthenticator {
	return NewStaticAuthenticator(Identity{
		ID:      DefaultID,
		Account: DefaultAccount,
		Name:    DefaultName,
	}, DefaultPassword)
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, account, password string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	// always derive, so a wrong account costs the same as a wrong password
	passwordOK := cryptox.Verify(pw, a.salt, a.verifier)
	if account != a.identity.Account || !passwordOK {
		return Identity{}, ErrInvalidCredentials
	}
	return a.identity, nil
}
