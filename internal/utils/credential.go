package utils

import (
    "regexp"
    "strings"
)

// CredentialKind classifies the identifier a user logs in with.  The
// classification happens once at the HTTP boundary; lower layers receive
// the kind together with the value and never re-inspect the string.
type CredentialKind int

const (
    CredentialUsername CredentialKind = iota
    CredentialEmail
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ClassifyCredential decides whether a login identifier is an email
// address or a username.  Anything that does not look like an email is
// treated as a username.
func ClassifyCredential(identifier string) CredentialKind {
    if emailPattern.MatchString(strings.TrimSpace(identifier)) {
        return CredentialEmail
    }
    return CredentialUsername
}
