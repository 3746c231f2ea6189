// Package store persists pipeline artifacts between command invocations.
// The parse stage writes the profile, the search stage writes listings,
// and the apply stage reads both back.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"jobscout/internal/common"
	"jobscout/internal/errors"
	"jobscout/internal/types"
)

const (
	profileFile  = "profile.json"
	listingsFile = "listings.json"
)

// Store reads and writes run artifacts under a data directory.
type Store struct {
	dataDir       string
	fileProcessor *common.FileProcessor
	logger        *errors.Logger
}

// New creates a store rooted at dataDir.
func New(dataDir string, logger *errors.Logger) *Store {
	return &Store{
		dataDir:       dataDir,
		fileProcessor: common.NewFileProcessor(logger),
		logger:        logger,
	}
}

// ProfilePath returns the path of the persisted profile.
func (s *Store) ProfilePath() string {
	return filepath.Join(s.dataDir, profileFile)
}

// ListingsPath returns the path of the persisted listings.
func (s *Store) ListingsPath() string {
	return filepath.Join(s.dataDir, listingsFile)
}

// SaveProfile writes the profile as indented JSON.
func (s *Store) SaveProfile(profile types.UserProfile) error {
	return s.save(s.ProfilePath(), profile)
}

// LoadProfile reads the persisted profile.
func (s *Store) LoadProfile() (types.UserProfile, error) {
	var profile types.UserProfile
	if err := s.load(s.ProfilePath(), &profile); err != nil {
		return types.UserProfile{}, err
	}
	return profile, nil
}

// SaveListings writes the collected listings as indented JSON.
func (s *Store) SaveListings(listings []types.ListingRecord) error {
	return s.save(s.ListingsPath(), listings)
}

// LoadListings reads the persisted listings.
func (s *Store) LoadListings() ([]types.ListingRecord, error) {
	var listings []types.ListingRecord
	if err := s.load(s.ListingsPath(), &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Store) save(path string, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.NewInternalError("MARSHAL_FAILED",
			fmt.Sprintf("Failed to encode %s", filepath.Base(path)), err)
	}

	if err := s.fileProcessor.WriteFile(path, string(content)+"\n"); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Debug("Saved artifact", "path", path, "bytes", len(content))
	}
	return nil
}

func (s *Store) load(path string, target any) error {
	content, err := s.fileProcessor.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), target); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to decode %s", filepath.Base(path)), err)
	}
	return nil
}
