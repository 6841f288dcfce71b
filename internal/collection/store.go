package collection

import (
	"github.com/gphunter1004/automation/internal/models"
)

// unknownSize is used in dedup keys of result records, whose byte size is not
// reported by the OCR service.
const unknownSize int64 = -1

type dedupKey struct {
	name string
	size int64
}

// recordStore owns the primary and supplementary collections and the result
// records. A single index maps every (name, size) key to the collection that
// holds it, so a file can live in at most one place.
type recordStore struct {
	partitions map[Partition][]*models.FileRecord
	results    []*models.ResultRecord
	index      map[dedupKey]Partition
}

func newRecordStore() *recordStore {
	s := &recordStore{}
	s.reset()
	return s
}

func (s *recordStore) reset() {
	s.partitions = map[Partition][]*models.FileRecord{
		Primary:       nil,
		Supplementary: nil,
	}
	s.results = nil
	s.index = make(map[dedupKey]Partition)
}

func (s *recordStore) records(p Partition) []*models.FileRecord {
	return s.partitions[p]
}

func (s *recordStore) count(p Partition) int {
	return len(s.partitions[p])
}

// owner returns the collection already holding a file with the same name and
// size. Results match on name alone when their size is unknown.
func (s *recordStore) owner(f models.SourceFile) (Partition, bool) {
	if p, ok := s.index[dedupKey{name: f.Name, size: f.Size}]; ok {
		return p, true
	}
	if p, ok := s.index[dedupKey{name: f.Name, size: unknownSize}]; ok {
		return p, true
	}
	return "", false
}

func (s *recordStore) add(p Partition, rec *models.FileRecord) {
	s.partitions[p] = append(s.partitions[p], rec)
	s.index[keyOf(rec.Source)] = p
}

func (s *recordStore) find(id models.RecordID) (*models.FileRecord, Partition, int) {
	for _, p := range []Partition{Primary, Supplementary} {
		for i, rec := range s.partitions[p] {
			if rec.ID == id {
				return rec, p, i
			}
		}
	}
	return nil, "", -1
}

func (s *recordStore) remove(id models.RecordID) (*models.FileRecord, Partition, bool) {
	rec, p, i := s.find(id)
	if rec == nil {
		return nil, "", false
	}
	recs := s.partitions[p]
	s.partitions[p] = append(recs[:i:i], recs[i+1:]...)
	delete(s.index, keyOf(rec.Source))
	return rec, p, true
}

// take empties a collection and returns its records. Their dedup keys are
// released.
func (s *recordStore) take(p Partition) []*models.FileRecord {
	recs := s.partitions[p]
	for _, rec := range recs {
		delete(s.index, keyOf(rec.Source))
	}
	s.partitions[p] = nil
	return recs
}

// addResults appends result records. sizes maps a submitted file name to the
// byte sizes submitted under that name, letting results keep exact keys.
func (s *recordStore) addResults(results []*models.ResultRecord, sizes map[string][]int64) {
	for _, r := range results {
		size := unknownSize
		if known := sizes[r.FileName]; len(known) > 0 {
			size = known[0]
			sizes[r.FileName] = known[1:]
		}
		s.index[dedupKey{name: r.FileName, size: size}] = resultsOwner
		s.results = append(s.results, r)
	}
}

func (s *recordStore) findResult(id models.RecordID) *models.ResultRecord {
	for _, r := range s.results {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func keyOf(f models.SourceFile) dedupKey {
	return dedupKey{name: f.Name, size: f.Size}
}
