package service_test

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/pkg/blobstore"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/service"
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"testing"
)

func newFileService(t *testing.T) service.FileService {
	t.Helper()
	store, err := blobstore.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	cfg := config.UploadConfig{
		MaxSizeMB:     50,
		ImageTypes:    []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		DocumentTypes: []string{"application/pdf", "text/plain", "text/markdown"},
	}
	return service.NewFileService(cfg, store)
}

// fileHeader 通过真实的 multipart 编解码构造 FileHeader
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
	if _, err = part.Write(content); err != nil {
		t.Fatalf("part write failed: %v", err)
	}
	if err = writer.Close(); err != nil {
		t.Fatalf("writer close failed: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, file, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile failed: %v", err)
	}
	return file
}

func TestResolveContentType(t *testing.T) {
	svc := newFileService(t)

	cases := []struct {
		name     string
		declared string
		filename string
		want     string
	}{
		{"declared wins", "image/png", "photo.jpg", "image/png"},
		{"extension guess", "", "photo.png", "image/png"},
		{"guess strips parameters", "", "readme.txt", "text/plain"},
		{"unknown extension falls back", "", "blob.xyzzy", consts.MimeOctetStream},
		{"no extension falls back", "", "README", consts.MimeOctetStream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.ResolveContentType(tc.declared, tc.filename); got != tc.want {
				t.Errorf("ResolveContentType(%q, %q) = %q, want %q", tc.declared, tc.filename, got, tc.want)
			}
		})
	}
}

func TestValidateThumbnailType(t *testing.T) {
	svc := newFileService(t)

	if err := svc.ValidateThumbnailType("image/png"); err != nil {
		t.Errorf("image/png should pass: %v", err)
	}
	// 文档类型对缩略图不可用
	if err := svc.ValidateThumbnailType("application/pdf"); !errors.Is(err, service.ErrFileNotSupported) {
		t.Errorf("expected ErrFileNotSupported for application/pdf, got %v", err)
	}
	if err := svc.ValidateThumbnailType("application/zip"); !errors.Is(err, service.ErrFileNotSupported) {
		t.Errorf("expected ErrFileNotSupported for application/zip, got %v", err)
	}
}

func TestValidateAttachmentType(t *testing.T) {
	svc := newFileService(t)

	for _, ok := range []string{"image/png", "application/pdf", "text/markdown"} {
		if err := svc.ValidateAttachmentType(ok); err != nil {
			t.Errorf("%s should pass: %v", ok, err)
		}
	}
	if err := svc.ValidateAttachmentType("application/zip"); !errors.Is(err, service.ErrFileNotSupported) {
		t.Errorf("expected ErrFileNotSupported for application/zip, got %v", err)
	}
}

func TestValidateSize(t *testing.T) {
	svc := newFileService(t)

	if err := svc.ValidateSize(10 << 20); err != nil {
		t.Errorf("10MiB should pass: %v", err)
	}
	if err := svc.ValidateSize(60 << 20); !errors.Is(err, service.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge for 60MiB, got %v", err)
	}
	// 声明大小未知时跳过检查
	if err := svc.ValidateSize(0); err != nil {
		t.Errorf("unknown size should pass: %v", err)
	}
	if err := svc.ValidateSize(-1); err != nil {
		t.Errorf("negative size should pass: %v", err)
	}
}

func TestSaveThumbnail(t *testing.T) {
	svc := newFileService(t)
	ctx := context.Background()

	content := []byte("fake-png-bytes")
	stored, err := svc.SaveThumbnail(ctx, fileHeader(t, "cover.png", "image/png", content))
	if err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}

	if stored.OriginalFilename != "cover.png" {
		t.Errorf("expected original filename kept, got %q", stored.OriginalFilename)
	}
	if stored.Filename == "cover.png" {
		t.Error("expected a generated storage filename")
	}
	if stored.MimeType != "image/png" {
		t.Errorf("unexpected mime type %q", stored.MimeType)
	}
	if stored.URL != "/uploads/thumbnails/"+stored.Filename {
		t.Errorf("unexpected url %q", stored.URL)
	}
	if stored.Size != int64(len(content)) {
		t.Errorf("expected size %d, got %d", len(content), stored.Size)
	}

	data, err := os.ReadFile(svc.BlobPath(consts.BucketThumbnails, stored.Filename))
	if err != nil {
		t.Fatalf("stored blob unreadable: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("stored bytes differ from upload")
	}
}

func TestSaveThumbnail_RejectsWithoutWriting(t *testing.T) {
	svc := newFileService(t)

	_, err := svc.SaveThumbnail(context.Background(), fileHeader(t, "notes.pdf", "application/pdf", []byte("pdf")))
	if !errors.Is(err, service.ErrFileNotSupported) {
		t.Fatalf("expected ErrFileNotSupported, got %v", err)
	}
}

func TestSaveAttachment(t *testing.T) {
	svc := newFileService(t)

	stored, err := svc.SaveAttachment(context.Background(), fileHeader(t, "report.pdf", "application/pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("SaveAttachment failed: %v", err)
	}
	if !svc.BlobExists(consts.BucketAttachments, stored.Filename) {
		t.Error("expected attachment blob on disk")
	}
	if stored.URL != "/uploads/attachments/"+stored.Filename {
		t.Errorf("unexpected url %q", stored.URL)
	}
}

func TestDeleteBlob(t *testing.T) {
	svc := newFileService(t)

	stored, err := svc.SaveAttachment(context.Background(), fileHeader(t, "a.txt", "text/plain", []byte("hi")))
	if err != nil {
		t.Fatalf("SaveAttachment failed: %v", err)
	}

	if !svc.DeleteBlob(consts.BucketAttachments, stored.Filename) {
		t.Error("expected delete to report success")
	}
	if svc.BlobExists(consts.BucketAttachments, stored.Filename) {
		t.Error("blob should be gone")
	}
	// 再删一次应报告未删除而不报错
	if svc.DeleteBlob(consts.BucketAttachments, stored.Filename) {
		t.Error("second delete should report false")
	}
}
