// Package session keeps the signed-in user's state in a preferences store.
//
// Store reads every field straight from the repository on each call and
// flushes after every write, so the repository is the only source of truth.
// A user counts as logged in when LOGINID is non-zero and ACCOUNT is present.
// Login writes id, account and name in one transaction; Logout removes id,
// account, name and profile in one transaction.
//
// Getters never return errors: a failed read is logged and reported as the
// zero value (or the fallback image for ProfileImage). Setters, Login and
// Logout return storage errors.
//
// Store does no locking. Callers serialize access.
package session
