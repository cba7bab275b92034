package qrcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

var ErrInvalidSize = fmt.Errorf("size must be between %d and %d", MinSize, MaxSize)

// QRService renders share codes pointing at public event pages.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// EventURL is the address encoded for an event.
func (s *QRService) EventURL(eventID uint) string {
	return fmt.Sprintf("%s/events/%d/", s.baseURL, eventID)
}

// GenerateEventQRCode returns a square PNG of the given side length.
func (s *QRService) GenerateEventQRCode(eventID uint, size int) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}

	png, err := qrcode.Encode(s.EventURL(eventID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}

func IsInvalidSize(err error) bool {
	return errors.Is(err, ErrInvalidSize)
}
