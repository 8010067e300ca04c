package history

import (
	"crypto/sha1"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/goldenhour/pkg/log"
)

const (
	sessionName   = "golden-hour"
	visitorKey    = "visitor"
	recentKey     = "recent"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.
)

// SessionStore keeps a visitor id and their recent places in an encrypted
// cookie.
type SessionStore struct {
	store *sessions.CookieStore
}

// NewSessionStore returns a store signing cookies with sessionKey and
// encrypting them with a key derived from password.
func NewSessionStore(sessionKey, password string, secure bool) *SessionStore {
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			encryptionKey(password),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	store.MaxAge(defaultMaxAge)
	return &SessionStore{store: store}
}

func encryptionKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte{}, 4096, 32, sha1.New)
}

// Session is one request's view of the cookie.
type Session struct {
	s *sessions.Session
	r *http.Request
	w http.ResponseWriter
}

// Open reads the request's session. Cookies that fail to decode are replaced
// by a new session.
func (s *SessionStore) Open(w http.ResponseWriter, r *http.Request) *Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		log.Debugf("Discarding unreadable session: %v", err)
	}
	return &Session{s: sess, r: r, w: w}
}

// KnownVisitor returns the visitor id the request came with, or nil.
func (s *Session) KnownVisitor() any {
	return s.s.Values[visitorKey]
}

// Visitor returns the visitor's id, assigning one on first sight.
func (s *Session) Visitor() string {
	if id, ok := s.s.Values[visitorKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.s.Values[visitorKey] = id
	return id
}

// Recent returns the places stored in the cookie.
func (s *Session) Recent() Recent {
	raw, ok := s.s.Values[recentKey].(string)
	if !ok {
		return nil
	}
	var r Recent
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		log.Debugf("Discarding unreadable recent places: %v", err)
		return nil
	}
	return r
}

// SetRecent replaces the places stored in the cookie. An empty list clears
// them.
func (s *Session) SetRecent(r Recent) {
	if len(r) == 0 {
		delete(s.s.Values, recentKey)
		return
	}
	blob, err := json.Marshal(r)
	if err != nil {
		log.Warnf("Failed to encode recent places: %v", err)
		return
	}
	s.s.Values[recentKey] = string(blob)
}

// Save writes the cookie. It must be called before the response body.
func (s *Session) Save() error {
	return s.s.Save(s.r, s.w)
}
