package upload

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DGonNine/teacher-management/config"
	teacherapi "github.com/DGonNine/teacher-management/internal/api/teacher"
	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/services/storage"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// imagePrefix groups teacher images inside the store.
const imagePrefix = "teachers"

// sniffLen is how much of the file http.DetectContentType looks at.
const sniffLen = 512

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var errNotImage = errors.New("file content does not match an image of its extension")

// sniffImage checks the leading bytes of f against the type ext names, then rewinds f.
func sniffImage(f multipart.File, ext string) error {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	want := imageTypes[ext]
	if want == "" {
		want = mime.TypeByExtension(ext)
	}
	detected := http.DetectContentType(head[:n])
	if !strings.HasPrefix(detected, "image/") || detected != want {
		return errNotImage
	}
	_, err = f.Seek(0, io.SeekStart)
	return err
}

type Handler struct {
	svc   *teacher.Service
	store storage.Store
	cfg   config.UploadConfig
}

func NewHandler(svc *teacher.Service, store storage.Store, cfg config.UploadConfig) *Handler {
	return &Handler{svc: svc, store: store, cfg: cfg}
}

// HandleTeacherImage stores a multipart "file" and records its path on the teacher.
func (h *Handler) HandleTeacherImage(c fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.svc.Get(c.Context(), id); err != nil {
		return apperror.Write(config.ModuleUpload, c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "file is required")
	}
	if fh.Size == 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "empty file")
	}
	if fh.Size > h.cfg.MaxImageBytes {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "file is too large")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(h.cfg.AllowedExtensions, ext) {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "unsupported image type")
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "cannot open file")
	}
	defer file.Close()

	if err := sniffImage(file, ext); err != nil {
		if errors.Is(err, errNotImage) {
			return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "file content is not a "+ext+" image")
		}
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidImage, "cannot read file")
	}

	path, err := h.store.Put(c.Context(), imagePrefix, file, ext)
	if err != nil {
		return apperror.Write(config.ModuleUpload, c, apperror.Wrap(apperror.KindInternal, status.StorageFailed, "store image", err))
	}
	logger.WithFields(map[string]interface{}{
		"module":     config.ModuleUpload,
		"teacher_id": id,
		"path":       path,
		"size":       fh.Size,
	}).Info("teacher image stored")

	t, err := h.svc.SetImage(c.Context(), id, path)
	if err != nil {
		return apperror.Write(config.ModuleUpload, c, err)
	}
	return c.JSON(teacherapi.NewResponse(t))
}
