package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/unilife-dev/unilife/internal/validation"
)

// uploadsPrefix is the web path uploaded media is served under.
const uploadsPrefix = "/uploads/"

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// saveImages validates the multipart files under formField and stores
// each one, returning their web paths.
func (h *Handler) saveImages(r *http.Request, formField string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	fileHeaders := r.MultipartForm.File[formField]

	pending, err := validation.ValidateImages(fileHeaders, h.cfg.Public.AllowedImageMimeTypes, h.cfg.Public.MaxImagesPerUpload)
	if err != nil {
		return nil, err
	}

	paths := []string{}
	for _, p := range pending {
		name, err := h.media.Save(p.Data, filepath.Ext(p.Filename))
		p.Data.Close()
		if err != nil {
			return nil, err
		}
		paths = append(paths, uploadsPrefix+name)
	}
	return paths, nil
}
