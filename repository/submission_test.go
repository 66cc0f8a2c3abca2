package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "submissions.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entity.Submission{}, &entity.Child{}, &entity.Photo{}))
	return db
}

func intPtr(v int) *int { return &v }

func sampleInput() SubmissionInput {
	return SubmissionInput{
		GuardianName: "  José Álvares  ",
		Turma:        "JII A",
		Children: []ChildInput{
			{
				Name: " María ",
				Photos: []PhotoInput{
					{FileName: "Foto Nº1.JPG", FileType: "image/jpeg"},
					{FileName: "foto2.jpg", FileType: "image/jpeg"},
					{FileName: "foto3.jpg", FileType: "image/jpeg"},
				},
			},
			{
				Name: "Pedro",
				Photos: []PhotoInput{
					{FileName: "a.png", FileType: "image/png"},
					{FileName: "b.png", FileType: "image/png"},
					{FileName: "c.png", FileType: "image/png"},
				},
			},
		},
	}
}

func TestCreateSubmissionTree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	result, err := repo.CreateSubmissionTree(context.Background(), sampleInput())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.SubmissionID.String())

	// 2 children with 3 photos each means 6 upload descriptors.
	require.Len(t, result.CreatedPhotos, 6)

	var submission entity.Submission
	require.NoError(t, db.First(&submission, "id = ?", result.SubmissionID).Error)
	assert.Equal(t, "José Álvares", submission.GuardianName)
	assert.Equal(t, "JII A", submission.Turma)

	var childCount, photoCount int64
	require.NoError(t, db.Model(&entity.Child{}).Count(&childCount).Error)
	require.NoError(t, db.Model(&entity.Photo{}).Count(&photoCount).Error)
	assert.EqualValues(t, 2, childCount)
	assert.EqualValues(t, 6, photoCount)

	// Keys are derived from persisted trimmed values, not the raw input.
	assert.Equal(t, "jii_a/jose_alvares/maria/1-foto-n1.jpg", result.CreatedPhotos[0].ObjectKey)
	assert.Equal(t, "jii_a/jose_alvares/pedro/1-a.png", result.CreatedPhotos[3].ObjectKey)

	// Descriptor indices follow input positions.
	assert.Equal(t, 0, result.CreatedPhotos[0].ChildIndex)
	assert.Equal(t, 0, result.CreatedPhotos[0].PhotoIndex)
	assert.Equal(t, 1, result.CreatedPhotos[5].ChildIndex)
	assert.Equal(t, 2, result.CreatedPhotos[5].PhotoIndex)

	// The persisted key matches the descriptor key for every photo.
	for _, created := range result.CreatedPhotos {
		var photo entity.Photo
		require.NoError(t, db.First(&photo, "id = ?", created.PhotoID).Error)
		assert.Equal(t, created.ObjectKey, photo.ObjectKey)
	}

	children, err := repo.ChildRepo.FindBySubmissionID(context.Background(), result.SubmissionID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "María", children[0].Name)

	photos, err := repo.PhotoRepo.FindByChildID(context.Background(), children[0].ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{photos[0].Order, photos[1].Order, photos[2].Order})

	total, err := repo.PhotoRepo.CountBySubmissionID(context.Background(), result.SubmissionID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
}

func TestCreateSubmissionTreeChildIndexOverride(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	input := sampleInput()
	input.Children[0].ChildIndex = intPtr(7)

	result, err := repo.CreateSubmissionTree(context.Background(), input)
	require.NoError(t, err)

	// The override replaces the positional index in the descriptors only.
	assert.Equal(t, 7, result.CreatedPhotos[0].ChildIndex)
	assert.Equal(t, 7, result.CreatedPhotos[2].ChildIndex)
	assert.Equal(t, 1, result.CreatedPhotos[3].ChildIndex)

	var children []entity.Child
	require.NoError(t, db.Order("position ASC").Find(&children).Error)
	require.Len(t, children, 2)
	assert.Equal(t, 0, children[0].Position)
	assert.Equal(t, 1, children[1].Position)
}

func TestCreateSubmissionTreeRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	// Fail the insert of the very last photo of the last child.
	var photoInserts int
	errInjected := errors.New("injected photo failure")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_last_photo", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*entity.Photo); !ok {
			return
		}
		photoInserts++
		if photoInserts == 6 {
			tx.AddError(errInjected)
		}
	}))

	repo := NewRepository(db)
	result, err := repo.CreateSubmissionTree(context.Background(), sampleInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, result)

	// Nothing from the request may be visible afterwards.
	var submissionCount, childCount, photoCount int64
	require.NoError(t, db.Model(&entity.Submission{}).Count(&submissionCount).Error)
	require.NoError(t, db.Model(&entity.Child{}).Count(&childCount).Error)
	require.NoError(t, db.Model(&entity.Photo{}).Count(&photoCount).Error)
	assert.Zero(t, submissionCount)
	assert.Zero(t, childCount)
	assert.Zero(t, photoCount)
}

func TestListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := sampleInput()
	olderResult, err := repo.CreateSubmissionTree(ctx, older)
	require.NoError(t, err)

	// Push the first submission into the past so ordering is unambiguous.
	require.NoError(t, db.Model(&entity.Submission{}).
		Where("id = ?", olderResult.SubmissionID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := SubmissionInput{
		GuardianName: "Ana Clara",
		Turma:        "JII B",
		Children: []ChildInput{
			{
				Name: "Bia",
				Photos: []PhotoInput{
					{FileName: "1.jpg", FileType: "image/jpeg"},
					{FileName: "2.jpg", FileType: "image/jpeg"},
					{FileName: "3.jpg", FileType: "image/jpeg"},
				},
			},
		},
	}
	newerResult, err := repo.CreateSubmissionTree(ctx, newer)
	require.NoError(t, err)

	submissions, err := repo.SubmissionRepo.ListRecent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, submissions, 2)

	// Newest first.
	assert.Equal(t, newerResult.SubmissionID, submissions[0].ID)
	assert.Equal(t, "Ana Clara", submissions[0].GuardianName)
	assert.Equal(t, olderResult.SubmissionID, submissions[1].ID)

	// Round trip: children in position order, photos in slot order, keys intact.
	require.Len(t, submissions[1].Children, 2)
	assert.Equal(t, "María", submissions[1].Children[0].Name)
	assert.Equal(t, "Pedro", submissions[1].Children[1].Name)
	require.Len(t, submissions[1].Children[0].Photos, 3)
	for i, photo := range submissions[1].Children[0].Photos {
		assert.Equal(t, i, photo.Order)
	}
	assert.Equal(t, "jii_a/jose_alvares/maria/1-foto-n1.jpg", submissions[1].Children[0].Photos[0].ObjectKey)

	// Limit is honored.
	limited, err := repo.SubmissionRepo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newerResult.SubmissionID, limited[0].ID)
}
