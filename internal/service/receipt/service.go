package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxUploadSize bounds a single receipt upload.
	MaxUploadSize = 5 << 20

	// Images wider or taller than this are scaled down before storage.
	maxImageDimension = 1600

	receiptDir = "receipts"
)

var allowedExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

var (
	ErrInvalidReceiptType = apperror.BadRequest("Receipt must be a jpg, jpeg, png or pdf file")
	ErrReceiptTooLarge    = apperror.BadRequest("Receipt exceeds the 5MB upload limit")
	ErrUnknownReceipt     = apperror.BadRequest("Receipt does not reference an uploaded file")
	ErrReceiptNotFound    = apperror.NotFound("Receipt not found")
)

type ReceiptService interface {
	// UploadReceipt stores a receipt for authorID and returns its storage path.
	UploadReceipt(ctx context.Context, authorID int64, file io.Reader, filename string) (string, error)

	// VerifyReceipt checks that path names an uploaded receipt of authorID.
	VerifyReceipt(ctx context.Context, authorID int64, path string) error

	// OpenReceipt opens a stored receipt file. Callers close the reader.
	OpenReceipt(ctx context.Context, path string) (io.ReadCloser, error)

	DeleteReceipt(ctx context.Context, path string) error
	ReceiptURL(path string) string
}

// OwnerOf returns the author id encoded in a receipt path of the form
// receipts/{authorID}/{file}.
func OwnerOf(receiptPath string) (int64, bool) {
	if path.Clean(receiptPath) != receiptPath {
		return 0, false
	}
	parts := strings.Split(receiptPath, "/")
	if len(parts) != 3 || parts[0] != receiptDir || parts[2] == "" || parts[2] == ".." {
		return 0, false
	}
	authorID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || !validator.IsValidID(authorID) {
		return 0, false
	}
	return authorID, true
}

type receiptServiceImpl struct {
	storage storage.FileStorage
}

func NewReceiptService(storage storage.FileStorage) ReceiptService {
	return &receiptServiceImpl{storage: storage}
}

// UploadReceipt implements ReceiptService. Large images are re-encoded as
// JPEG; PDFs are stored unchanged.
func (s *receiptServiceImpl) UploadReceipt(ctx context.Context, authorID int64, file io.Reader, filename string) (string, error) {
	if !validator.IsValidID(authorID) {
		return "", apperror.BadRequest("Invalid author id")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, allowedExts) {
		return "", ErrInvalidReceiptType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", apperror.Internal("Unable to read receipt", err)
	}
	if len(buffer) > MaxUploadSize {
		return "", ErrReceiptTooLarge
	}

	contentType := "application/pdf"
	if ext != ".pdf" {
		contentType = "image/jpeg"
		if ext == ".png" {
			contentType = "image/png"
		}

		shrunk, ok, err := shrinkImage(buffer)
		if err != nil {
			return "", ErrInvalidReceiptType
		}
		if ok {
			buffer, ext, contentType = shrunk, ".jpg", "image/jpeg"
		}
	}

	target := path.Join(receiptDir, fmt.Sprint(authorID), uuid.NewString()+ext)

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(buffer), target, contentType)
	if err != nil {
		return "", apperror.Internal("Unable to store receipt", err)
	}
	return uploaded, nil
}

// VerifyReceipt implements ReceiptService.
func (s *receiptServiceImpl) VerifyReceipt(ctx context.Context, authorID int64, receiptPath string) error {
	prefix := path.Join(receiptDir, fmt.Sprint(authorID)) + "/"
	if !strings.HasPrefix(receiptPath, prefix) {
		return ErrUnknownReceipt
	}

	exists, err := s.storage.Exists(ctx, receiptPath)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return ErrUnknownReceipt
		}
		return apperror.Internal("Unable to check receipt", err)
	}
	if !exists {
		return ErrUnknownReceipt
	}
	return nil
}

// OpenReceipt implements ReceiptService. Only regular files under a receipt
// path are opened.
func (s *receiptServiceImpl) OpenReceipt(ctx context.Context, receiptPath string) (io.ReadCloser, error) {
	if _, ok := OwnerOf(receiptPath); !ok {
		return nil, ErrReceiptNotFound
	}

	exists, err := s.storage.Exists(ctx, receiptPath)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return nil, ErrReceiptNotFound
		}
		return nil, apperror.Internal("Unable to open receipt", err)
	}
	if !exists {
		return nil, ErrReceiptNotFound
	}

	file, err := s.storage.Open(ctx, receiptPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, apperror.Internal("Unable to open receipt", err)
	}
	return file, nil
}

// DeleteReceipt implements ReceiptService.
func (s *receiptServiceImpl) DeleteReceipt(ctx context.Context, receiptPath string) error {
	if err := s.storage.Delete(ctx, receiptPath); err != nil {
		return apperror.Internal("Unable to delete receipt", err)
	}
	return nil
}

// ReceiptURL implements ReceiptService.
func (s *receiptServiceImpl) ReceiptURL(receiptPath string) string {
	return s.storage.URL(receiptPath)
}

// shrinkImage scales an image whose longest side exceeds maxImageDimension
// and re-encodes it as JPEG. ok is false when the image is already small.
func shrinkImage(buffer []byte) (shrunk []byte, ok bool, err error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := max(width, height)
	if longest <= maxImageDimension {
		return nil, false, nil
	}

	newWidth := width * maxImageDimension / longest
	newHeight := height * maxImageDimension / longest

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	// CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, false, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), true, nil
}
