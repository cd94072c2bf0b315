package storage

import (
	"fmt"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
)

// Store groups the buckets the service uses.
type Store struct {
	EventImages   Bucket
	Resources     Bucket
	TeamDocuments Bucket
}

// Bucket looks a bucket up by name.
func (s *Store) Bucket(name string) (Bucket, bool) {
	switch name {
	case constants.BucketEventImages:
		return s.EventImages, s.EventImages != nil
	case constants.BucketResources:
		return s.Resources, s.Resources != nil
	case constants.BucketTeamDocuments:
		return s.TeamDocuments, s.TeamDocuments != nil
	default:
		return nil, false
	}
}

// NewLocalStore creates the three buckets as directories under root.
func NewLocalStore(root, baseURL string) (*Store, error) {
	names := []string{constants.BucketEventImages, constants.BucketResources, constants.BucketTeamDocuments}
	buckets := make([]Bucket, len(names))
	for i, name := range names {
		b, err := NewLocalBucket(root, name, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket %s: %w", name, err)
		}
		buckets[i] = b
	}
	return &Store{
		EventImages:   buckets[0],
		Resources:     buckets[1],
		TeamDocuments: buckets[2],
	}, nil
}
