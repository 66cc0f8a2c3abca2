package controller

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/obrunogonzaga/formatura-2025/http/controller/dto"
	"github.com/obrunogonzaga/formatura-2025/infra"
	"github.com/obrunogonzaga/formatura-2025/infra/produce"
	"github.com/obrunogonzaga/formatura-2025/repository"
	"github.com/obrunogonzaga/formatura-2025/utils"
)

const (
	recentSubmissionsLimit    = 20
	recentSubmissionsCacheKey = "submissions:recent"
	recentSubmissionsCacheTTL = 30 * time.Second

	msgInvalidPayload = "Dados inválidos. Verifique os campos e tente novamente."
	msgSaveFailed     = "Não foi possível salvar a submissão agora."
	msgListFailed     = "Não foi possível listar as submissões."
)

// CreateSubmission handles POST /submissions: validate, persist the whole
// submission tree atomically, then issue one presigned upload URL per photo.
// Presigning happens strictly after commit; a presign failure at that point
// leaves committed rows whose objects are never uploaded, which is accepted
// and surfaced as a 500 without compensation.
func (ctrl *Controller) CreateSubmission(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSubmissionRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Rejected malformed payload: %v", err)
		utils.JSON400(c, msgInvalidPayload)
		return
	}
	if err := req.Validate(); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Rejected invalid payload: %v", err)
		utils.JSON400(c, msgInvalidPayload)
		return
	}

	if tel := ctrl.Infra.Telemetry; tel != nil {
		var span trace.Span
		ctx, span = tel.Tracer.Start(ctx, "submission.create")
		defer span.End()
	}

	result, err := ctrl.Repository.CreateSubmissionTree(ctx, req.ToInput())
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Submission] Failed to persist submission")
		utils.JSON500(c, msgSaveFailed)
		return
	}

	uploadTargets, err := ctrl.issueUploadTargets(ctx, result.CreatedPhotos)
	if err != nil {
		// The tree is already committed; the rows stay behind without
		// objects and the client is asked to retry.
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Submission] Failed to issue upload targets for submission %s", result.SubmissionID)
		utils.JSON500(c, msgSaveFailed)
		return
	}

	ctrl.afterSubmissionCreated(ctx, &req, result)

	utils.JSON200(c, dto.CreateSubmissionResponseDTO{
		SubmissionID:  result.SubmissionID,
		UploadTargets: uploadTargets,
	})
}

// issueUploadTargets presigns one PUT URL per created photo. The requests
// are independent and idempotent, so they fan out concurrently.
func (ctrl *Controller) issueUploadTargets(ctx context.Context, photos []repository.CreatedPhoto) ([]dto.UploadTargetDTO, error) {
	targets := make([]dto.UploadTargetDTO, len(photos))

	g, gctx := errgroup.WithContext(ctx)
	for i, photo := range photos {
		g.Go(func() error {
			url, err := ctrl.Infra.Storage.PresignPutObject(gctx, photo.ObjectKey, photo.ContentType)
			if err != nil {
				return err
			}
			targets[i] = dto.UploadTargetDTO{
				URL:        url,
				ChildIndex: photo.ChildIndex,
				PhotoIndex: photo.PhotoIndex,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return targets, nil
}

// afterSubmissionCreated runs the best-effort side effects of a committed
// submission: metrics, cache invalidation and the submission.created event.
// None of them can fail the request.
func (ctrl *Controller) afterSubmissionCreated(ctx context.Context, req *dto.CreateSubmissionRequestDTO, result *repository.SubmissionResult) {
	if tel := ctrl.Infra.Telemetry; tel != nil {
		tel.SubmissionsCreated.Add(ctx, 1)
		tel.PhotosRegistered.Add(ctx, int64(len(result.CreatedPhotos)))
	}

	if ctrl.Infra.Redis != nil {
		if err := ctrl.Infra.Redis.Delete(ctx, recentSubmissionsCacheKey); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Failed to invalidate listing cache: %v", err)
		}
	}

	if ctrl.Infra.Produce != nil {
		message := produce.SubmissionCreatedMessage{
			SubmissionID: result.SubmissionID.String(),
			GuardianName: req.GuardianName,
			Turma:        req.Turma,
			ChildCount:   len(req.Children),
			PhotoCount:   len(result.CreatedPhotos),
		}
		if err := ctrl.Infra.Produce.SubmissionEvents.PublishSubmissionCreated(ctx, message); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Failed to publish submission.created event: %v", err)
		}
	}
}

// ListSubmissions handles GET /submissions: the most recent submissions with
// nested children and photos, each photo carrying its public read URL.
func (ctrl *Controller) ListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.Infra.Redis != nil {
		var cached dto.ListSubmissionsResponseDTO
		err := ctrl.Infra.Redis.Get(ctx, recentSubmissionsCacheKey, &cached)
		if err == nil {
			utils.JSON200(c, cached)
			return
		}
		// A miss is the normal path; anything else means the cache is
		// misbehaving and the listing silently stops being cached.
		if !errors.Is(err, infra.ErrCacheMiss) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Failed to read listing cache: %v", err)
		}
	}

	submissions, err := ctrl.Repository.SubmissionRepo.ListRecent(ctx, recentSubmissionsLimit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Submission] Failed to list submissions")
		utils.JSON500(c, msgListFailed)
		return
	}

	response := dto.ListSubmissionsResponseDTO{
		Submissions: make([]dto.SubmissionDTO, 0, len(submissions)),
	}
	for _, submission := range submissions {
		submissionDTO := dto.SubmissionDTO{
			ID:           submission.ID,
			GuardianName: submission.GuardianName,
			CreatedAt:    submission.CreatedAt,
			Children:     make([]dto.ChildDTO, 0, len(submission.Children)),
		}
		for _, child := range submission.Children {
			childDTO := dto.ChildDTO{
				ID:     child.ID,
				Name:   child.Name,
				Photos: make([]dto.PhotoDTO, 0, len(child.Photos)),
			}
			for _, photo := range child.Photos {
				childDTO.Photos = append(childDTO.Photos, dto.PhotoDTO{
					ID:        photo.ID,
					FileName:  photo.FileName,
					MimeType:  photo.MimeType,
					ObjectKey: photo.ObjectKey,
					Order:     photo.Order,
					URL:       ctrl.Infra.Storage.PublicObjectURL(photo.ObjectKey),
				})
			}
			submissionDTO.Children = append(submissionDTO.Children, childDTO)
		}
		response.Submissions = append(response.Submissions, submissionDTO)
	}

	if ctrl.Infra.Redis != nil {
		if err := ctrl.Infra.Redis.Set(ctx, recentSubmissionsCacheKey, response, recentSubmissionsCacheTTL); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Submission] Failed to cache listing: %v", err)
		}
	}

	utils.JSON200(c, response)
}
