package storage

import (
	"encoding/json"
	"fmt"

	"github.com/thanhnp/psbt-apis/internal/models"
)

// SummaryStore keeps produced summaries and the PSBTs they came from,
// keyed by network and txid
type SummaryStore struct {
	db *PebbleDB
}

// NewSummaryStore creates a new SummaryStore
func NewSummaryStore(db *PebbleDB) *SummaryStore {
	return &SummaryStore{db: db}
}

// OpenSummaryStore opens the database at path and wraps it in a SummaryStore
func OpenSummaryStore(path string) (*SummaryStore, error) {
	db, err := NewPebbleDB(path)
	if err != nil {
		return nil, err
	}
	return NewSummaryStore(db), nil
}

// summaryKey creates a key for both column families
func summaryKey(network, txid string) []byte {
	return []byte(fmt.Sprintf("%s:%s", network, txid))
}

// Save stores a summary record and its base64 PSBT in one batch.
// Saving the same network and txid again replaces the previous record.
func (s *SummaryStore) Save(rec *models.SummaryRecord, psbtBase64 string) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	key := summaryKey(rec.Network, rec.Summary.TxID)
	batch := s.db.NewBatch()
	defer batch.Destroy()

	if err := batch.Put(CFSummaries, key, data); err != nil {
		return err
	}
	if err := batch.Put(CFPsbts, key, []byte(psbtBase64)); err != nil {
		return err
	}
	return batch.Commit()
}

// Get retrieves a summary record; nil when absent
func (s *SummaryStore) Get(network, txid string) (*models.SummaryRecord, error) {
	data, err := s.db.Get(CFSummaries, summaryKey(network, txid))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var rec models.SummaryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &rec, nil
}

// GetPsbt retrieves the base64 PSBT a summary was built from; empty when absent
func (s *SummaryStore) GetPsbt(network, txid string) (string, error) {
	data, err := s.db.Get(CFPsbts, summaryKey(network, txid))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns up to limit records of a network in txid order
func (s *SummaryStore) List(network string, limit int) ([]*models.SummaryRecord, error) {
	iter, err := s.db.NewPrefixIterator(CFSummaries, []byte(network+":"))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	recs := []*models.SummaryRecord{}
	for ; iter.Valid() && (limit <= 0 || len(recs) < limit); iter.Next() {
		var rec models.SummaryRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

// Delete removes a summary and its PSBT
func (s *SummaryStore) Delete(network, txid string) error {
	key := summaryKey(network, txid)
	batch := s.db.NewBatch()
	defer batch.Destroy()

	if err := batch.Delete(CFSummaries, key); err != nil {
		return err
	}
	if err := batch.Delete(CFPsbts, key); err != nil {
		return err
	}
	return batch.Commit()
}

// Close closes the underlying database
func (s *SummaryStore) Close() error {
	return s.db.Close()
}
