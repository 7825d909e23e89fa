package core

// BatchStore holds the batch a reviewer is working on. Loading a file
// replaces whatever was held before; a failed load keeps the old batch.
//
// A BatchStore is not safe for concurrent use. Service serializes access
// per session.
type BatchStore struct {
	batch *Batch
}

// Load parses raw as JSONL and makes it the current batch.
func (s *BatchStore) Load(name string, raw []byte) (*Batch, error) {
	b, err := ParseBatch(name, raw)
	if err != nil {
		return nil, err
	}
	s.batch = b
	return b, nil
}

// Current returns the held batch or ErrNoBatch.
func (s *BatchStore) Current() (*Batch, error) {
	if s.batch == nil {
		return nil, ErrNoBatch
	}
	return s.batch, nil
}

// Export serializes the held batch and returns it with its download name.
func (s *BatchStore) Export() (string, []byte, error) {
	b, err := s.Current()
	if err != nil {
		return "", nil, err
	}
	return b.ExportName(), Export(b), nil
}

// Reset discards the held batch.
func (s *BatchStore) Reset() {
	s.batch = nil
}
