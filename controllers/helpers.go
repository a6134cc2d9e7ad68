package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
)

const (
	categoryUploadDir = "uploads/categories"
	menuUploadDir     = "uploads/menu"
)

var errUploadFailed = errors.New("Error uploading file")

func paramID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// queryID parses an id from the query string, 0 when absent or malformed.
// Only the parsed number ever reaches the database.
func queryID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func flashAndRedirect(c *gin.Context, kind, text, location string) {
	utils.SetFlash(c, kind, text)
	c.Redirect(http.StatusSeeOther, location)
}

// resolveImage applies the shared image policy for categories and menu items:
// an uploaded file wins over the image_url field; a changed value deletes the
// previously stored local file (never an external URL); an upload failure is
// returned to the caller but the entity mutation continues with the fallback
// value (previous image, or the submitted URL, or nothing).
func resolveImage(c *gin.Context, dir, prefix, current string) (string, error) {
	file, err := c.FormFile("image_file")
	switch {
	case err == nil:
		stored, saveErr := utils.SaveImage(c, file, dir, prefix)
		if saveErr == nil {
			if current != stored {
				utils.RemoveImage(current)
			}
			return stored, nil
		}
		err = saveErr
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		err = nil
	default:
		err = errUploadFailed
	}

	image := current
	if url := strings.TrimSpace(c.PostForm("image_url")); url != "" && url != current {
		utils.RemoveImage(current)
		image = url
	}
	return image, err
}
