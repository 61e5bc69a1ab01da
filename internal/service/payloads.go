package service

import (
	"context"
	"fmt"
	"path/filepath"

	"bpauto/internal/config"
	"bpauto/internal/payload"
)

// Transferer moves payload files to and from the tester
type Transferer interface {
	Upload(ctx context.Context, localPath string) error
	Delete(ctx context.Context, name string) error
}

// NewUploader creates an SSH transferer for the configured tester
func NewUploader(conn config.ConnectionConfig) *payload.Uploader {
	return payload.NewUploader(payload.UploaderConfig{
		Host:     conn.TesterIP,
		Port:     conn.SSHPort,
		User:     conn.Login,
		Password: conn.Password,
	})
}

// PayloadService pushes generated payload files to the tester
type PayloadService struct {
	transfer Transferer
	eventBus *EventBus
}

// NewPayloadService creates a payload service
func NewPayloadService(transfer Transferer, eventBus *EventBus) *PayloadService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &PayloadService{transfer: transfer, eventBus: eventBus}
}

// UploadAll uploads every file, stopping at the first failure
func (s *PayloadService) UploadAll(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := s.transfer.Upload(ctx, path); err != nil {
			return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
		}
		s.eventBus.Publish(Event{Type: EventPayloadUploaded, Payload: filepath.Base(path)})
	}
	return nil
}

// DeleteAll removes the named payloads from the tester, returning the
// first error after trying them all
func (s *PayloadService) DeleteAll(ctx context.Context, payloads []config.PayloadConfig) error {
	var first error
	for _, p := range payloads {
		if err := s.transfer.Delete(ctx, p.FileName); err != nil && first == nil {
			first = fmt.Errorf("delete %s: %w", p.FileName, err)
		}
	}
	return first
}
