package domain

import "sync"

type SessionState string

const (
	StateNoDocument    SessionState = "no_document"
	StateDocumentReady SessionState = "document_ready"
)

// Session carries the document identifier from a successful upload to later
// questions. The mutex only protects the field; overlapping uploads are not
// serialized and the last one to finish wins.
type Session struct {
	id string

	mu         sync.RWMutex
	documentID DocumentID
}

func NewSession(id string) *Session {
	return &Session{id: id}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) DocumentID() (DocumentID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentID, s.documentID != ""
}

// SetDocumentID replaces the stored identifier. Empty identifiers are ignored.
func (s *Session) SetDocumentID(id DocumentID) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.documentID = id
	s.mu.Unlock()
}

func (s *Session) State() SessionState {
	if _, ok := s.DocumentID(); ok {
		return StateDocumentReady
	}
	return StateNoDocument
}
