package v1

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aleksmelnikov/meme-annotator/internal/controller/restapi/v1/response"
	"github.com/aleksmelnikov/meme-annotator/internal/controller/restapi/v1/validate"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

// @Summary  	Scraped history
// @Description Returns the full snapshot of scraped posts
// @Tags 		posts
// @Produce 	json
// @Success 	200 {array} entity.Post
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/history [get]
func (r *V1) history(ctx *fiber.Ctx) error {
	return r.renderHistory(ctx, entity.OriginScraped)
}

// @Summary  	Uploads history
// @Description Returns the full snapshot of manually uploaded posts
// @Tags 		posts
// @Produce 	json
// @Success 	200 {array} entity.Post
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/uploads/history [get]
func (r *V1) uploadsHistory(ctx *fiber.Ctx) error {
	return r.renderHistory(ctx, entity.OriginUploaded)
}

func (r *V1) renderHistory(ctx *fiber.Ctx, origin entity.Origin) error {
	posts, err := r.posts.History(ctx.UserContext(), origin)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - renderHistory")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.JSON(posts)
}

// @Summary  	Upload post
// @Description Stores an image and creates a pending uploaded-origin post
// @Tags 		posts
// @Accept 		mpfd
// @Produce 	json
// @Param 		file 	formData file   true  "Image file(jpg, png, gif, webp)"
// @Param 		caption formData string false "Caption"
// @Success 	201 {object} response.Upload
// @Failure 	400 {object} response.Error "Empty file"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/upload [post]
func (r *V1) uploadPost(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "file is required")
	}

	// 1. валидация размера
	if file.Size == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "file is empty")
	}

	if file.Size > validate.MaxFileSize {
		return errorResponse(ctx, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize))
	}

	// 2. валидация content type
	contentType := file.Header.Get("Content-Type")
	if !validate.AllowedContentTypes[contentType] {
		return errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, gif, webp")
	}

	// 3. валидация расширения
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !validate.AllowedExtensions[ext] {
		return errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported file extension. Allowed: .jpg, .jpeg, .png, .gif, .webp")
	}

	// 4. открытие файла
	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadPost")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
	}
	defer fileReader.Close()

	// 5. загружаем
	post, err := r.posts.UploadPost(ctx.UserContext(), fileReader, file.Filename, ctx.FormValue("caption"))
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadPost")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	// 6. ответ
	resp := response.Upload{
		PostID:    post.ID,
		ImagePath: post.ImagePath,
		Status:    string(post.Status),
		CreatedAt: post.Timestamp.Format(time.RFC3339),
	}

	return ctx.Status(http.StatusCreated).JSON(resp)
}

// @Summary 	Delete post
// @Description Deletes the record from whichever store holds it plus the backing image
// @Tags 		posts
// @Param		id 	path	 string true "Post ID"
// @Success		204 "Deleted"
// @Failure 	404 {object} response.Error "Post not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/post/{id} [delete]
func (r *V1) deletePost(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.posts.DeletePost(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "post not found")
		}
		r.logger.Error(err, "restapi - v1 - deletePost")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Delete folder
// @Description Deletes all scraped posts of one account and their image directory
// @Tags 		posts
// @Param		username path	 string true "Account username"
// @Success		204 "Deleted"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/folder/{username} [delete]
func (r *V1) deleteFolder(ctx *fiber.Ctx) error {
	username := ctx.Params("username")
	if username == "" {
		return errorResponse(ctx, http.StatusBadRequest, "invalid username")
	}

	err := r.posts.DeleteFolder(ctx.UserContext(), username)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "user not found")
		}
		r.logger.Error(err, "restapi - v1 - deleteFolder")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
