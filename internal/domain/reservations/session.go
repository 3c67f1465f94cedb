package reservations

import "crypto/subtle"

type Credentials struct {
	ID       string
	Password string
}

func DefaultCredentials() Credentials {
	return Credentials{ID: "admin", Password: "1234"}
}

type session struct {
	credentials Credentials
	admin       bool
}

func newSession(credentials Credentials) session {
	return session{credentials: credentials}
}

// login sets the session to the outcome of the comparison, so a failed
// attempt also revokes an earlier successful one.
func (s *session) login(id, password string) bool {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(s.credentials.ID)) == 1
	pwOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.credentials.Password)) == 1

	s.admin = idOK && pwOK
	return s.admin
}

func (s *session) logout() {
	s.admin = false
}
