package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"schoolhub/internal/repository"
)

const backupVersion = "1.0"

// BackupData is the export file format
type BackupData struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	StoreType  string        `json:"store_type"`
	Entries    []EntryBackup `json:"entries"`
}

// EntryBackup is one persisted key
type EntryBackup struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService exports and restores the persisted app state
type BackupService struct {
	store     repository.StateStore
	storeType string
}

// NewBackupService creates a new backup service
func NewBackupService(store repository.StateStore, storeType string) *BackupService {
	return &BackupService{store: store, storeType: storeType}
}

// Export writes every persisted key to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting state export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	n, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	log.Printf("State exported successfully to %s (%d keys)", outputPath, n)
	return nil
}

// ExportToWriter writes the backup to w and returns the number of keys
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (int, error) {
	entries, err := s.store.List(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list state: %w", err)
	}

	backup := BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now(),
		StoreType:  s.storeType,
		Entries:    make([]EntryBackup, 0, len(entries)),
	}
	for k, v := range entries {
		backup.Entries = append(backup.Entries, EntryBackup{Key: k, Value: v})
	}
	sort.Slice(backup.Entries, func(i, j int) bool { return backup.Entries[i].Key < backup.Entries[j].Key })

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}
	return len(backup.Entries), nil
}

// Import restores keys from a backup file. Existing keys with the same name
// are overwritten; other keys are left alone.
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting state import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores keys from a backup reader
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s from %s", backup.Version, backup.ExportedAt, backup.StoreType)

	for _, e := range backup.Entries {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("backup contains an empty key")
		}
		if err := s.store.Set(ctx, e.Key, e.Value); err != nil {
			return fmt.Errorf("failed to import %s: %w", e.Key, err)
		}
	}

	log.Printf("State import completed successfully (%d keys)", len(backup.Entries))
	return nil
}

// Clear removes every persisted key
func (s *BackupService) Clear(ctx context.Context) error {
	if err := s.store.DeletePrefix(ctx, ""); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
