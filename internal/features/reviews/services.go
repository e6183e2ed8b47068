package reviews

import (
	"errors"
	"fmt"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSelfReview      = errors.New("you cannot review yourself")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview = errors.New("you have already reviewed this engagement")
	ErrRevieweeUnknown = errors.New("reviewee not found")
)

type CreateReviewRequest struct {
	RevieweeID string `json:"reviewee_id"`
	JobID      string `json:"job_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ReviewWithAuthor is the public listing shape.
type ReviewWithAuthor struct {
	Review     models.Review `json:"review"`
	AuthorName string        `json:"author_name"`
}

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create writes one review per (reviewer, reviewee, job). A second attempt
// for the same engagement is rejected.
func (s *ReviewService) Create(reviewerID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	revieweeID, err := uuid.Parse(req.RevieweeID)
	if err != nil {
		return nil, errors.New("invalid reviewee id")
	}
	if reviewerID == revieweeID {
		return nil, ErrSelfReview
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var reviewee models.User
	if err := s.db.First(&reviewee, "id = ?", revieweeID).Error; err != nil {
		return nil, ErrRevieweeUnknown
	}

	var jobID *uuid.UUID
	if req.JobID != "" {
		parsed, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, errors.New("invalid job id")
		}
		jobID = &parsed
	}

	dupe := s.db.Where("reviewer_id = ? AND reviewee_id = ?", reviewerID, revieweeID)
	if jobID != nil {
		dupe = dupe.Where("job_id = ?", *jobID)
	} else {
		dupe = dupe.Where("job_id IS NULL")
	}
	var existing models.Review
	if err := dupe.First(&existing).Error; err == nil {
		return nil, ErrDuplicateReview
	}

	review := models.Review{
		ID:         uuid.New(),
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		JobID:      jobID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// ListForUser returns the reviews written about a user, newest first, with
// author names batched in.
func (s *ReviewService) ListForUser(userID uuid.UUID) ([]ReviewWithAuthor, error) {
	var reviewList []models.Review
	if err := s.db.Where("reviewee_id = ?", userID).Order("created_at DESC").Find(&reviewList).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if len(reviewList) == 0 {
		return []ReviewWithAuthor{}, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(reviewList))
	for _, r := range reviewList {
		authorIDs = append(authorIDs, r.ReviewerID)
	}

	var authors []models.User
	if err := s.db.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch review authors: %w", err)
	}
	nameByID := make(map[uuid.UUID]string, len(authors))
	for _, a := range authors {
		nameByID[a.ID] = a.Name
	}

	result := make([]ReviewWithAuthor, 0, len(reviewList))
	for _, r := range reviewList {
		result = append(result, ReviewWithAuthor{
			Review:     r,
			AuthorName: nameByID[r.ReviewerID],
		})
	}
	return result, nil
}
