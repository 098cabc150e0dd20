package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aleksmelnikov/meme-annotator/internal/controller/restapi/v1/response"
	"github.com/aleksmelnikov/meme-annotator/internal/controller/restapi/v1/validate"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

type batchRequest struct {
	PostIDs []string `json:"post_ids"`
}

// @Summary  	Enrich scraped posts
// @Description Runs AI attribute extraction for the requested scraped posts
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		request body batchRequest true "Post IDs"
// @Success 	200 {object} response.Enrich
// @Failure 	400 {object} response.Error "Bad request"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/enrich [post]
func (r *V1) enrichScraped(ctx *fiber.Ctx) error {
	return r.enrichBatch(ctx, entity.OriginScraped)
}

// @Summary  	Enrich uploaded posts
// @Description Runs AI attribute extraction for the requested uploaded posts
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		request body batchRequest true "Post IDs"
// @Success 	200 {object} response.Enrich
// @Failure 	400 {object} response.Error "Bad request"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/uploads/enrich [post]
func (r *V1) enrichUploaded(ctx *fiber.Ctx) error {
	return r.enrichBatch(ctx, entity.OriginUploaded)
}

func (r *V1) enrichBatch(ctx *fiber.Ctx, origin entity.Origin) error {
	// 1. парсим тело
	var req batchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	// 2. валидация батча
	if len(req.PostIDs) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "post_ids is required")
	}

	if len(req.PostIDs) > validate.MaxBatchSize {
		return errorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("batch size cant be more than %d", validate.MaxBatchSize))
	}

	// 3. обогащаем
	results, err := r.enrich.EnrichBatch(ctx.UserContext(), origin, req.PostIDs)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - enrichBatch")

		return errorResponse(ctx, http.StatusInternalServerError, "enrichment problems")
	}

	return ctx.JSON(response.Enrich{Results: results})
}

// @Summary  	Annotate posts
// @Description Submits eligible enriched posts to the external catalog
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		Authorization header string       true "Bearer token"
// @Param 		request 	  body   batchRequest true "Post IDs"
// @Success 	200 {object} response.Annotate
// @Failure 	400 {object} response.Error "Nothing to submit"
// @Failure 	401 {object} response.Error "Missing token"
// @Failure 	502 {object} response.Error "Catalog rejected the batch"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/annotate [post]
func (r *V1) annotateBatch(ctx *fiber.Ctx) error {
	// 1. токен каталога
	authToken := strings.TrimPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
	if authToken == "" || authToken == ctx.Get(fiber.HeaderAuthorization) {
		return errorResponse(ctx, http.StatusUnauthorized, "bearer token is required")
	}

	// 2. парсим тело
	var req batchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if len(req.PostIDs) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "post_ids is required")
	}

	if len(req.PostIDs) > validate.MaxBatchSize {
		return errorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("batch size cant be more than %d", validate.MaxBatchSize))
	}

	// 3. отправляем
	summary, err := r.annotate.SubmitBatch(ctx.UserContext(), req.PostIDs, authToken)
	if err != nil {
		var subErr *errs.SubmissionError
		switch {
		case errors.Is(err, errs.ErrNothingToSubmit):
			return errorResponse(ctx, http.StatusBadRequest, "no eligible posts to submit")
		case errors.As(err, &subErr):
			r.logger.Error(err, "restapi - v1 - annotateBatch")

			return errorResponse(ctx, http.StatusBadGateway,
				fmt.Sprintf("catalog rejected the batch: status %d", subErr.StatusCode))
		default:
			r.logger.Error(err, "restapi - v1 - annotateBatch")

			return errorResponse(ctx, http.StatusInternalServerError, "submission problems")
		}
	}

	return ctx.JSON(response.Annotate{
		Submitted: summary.Submitted,
		Accepted:  summary.Accepted,
	})
}
