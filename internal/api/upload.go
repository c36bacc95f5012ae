package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/manthrakodi/bridalstore/internal/images"
	"github.com/manthrakodi/bridalstore/internal/webserver"
)

func (h *Handler) registerUploadRoutes(ws *webserver.WebServer) {
	ws.ApiPOST("/upload/images", h.uploadImages)
}

// uploadImages accepts multipart files[] plus an optional category field.
// Files are processed in order; the first rejected file aborts the request
// (already stored files from the same request are kept, matching the legacy
// behavior).
func (h *Handler) uploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected multipart form data", err.Error())
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fail(c, http.StatusBadRequest, "MISSING_FILES", "At least one file is required", nil)
	}
	category := c.FormValue("category")

	uploaded := make([]*images.StoredFile, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read "+fh.Filename, nil)
		}
		stored, err := h.images.Save(category, fh.Filename, src)
		_ = src.Close()
		if err != nil {
			return failFor(c, err, "Upload")
		}
		uploaded = append(uploaded, stored)
	}

	return ok(c, map[string]interface{}{
		"message": "Successfully uploaded " + strconv.Itoa(len(uploaded)) + " files",
		"files":   uploaded,
	})
}
