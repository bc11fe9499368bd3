package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	apperrors "maintenance-system/pkg/errors"
)

type interventionFixture struct {
	service          InterventionServiceInterface
	interventionRepo *fakeInterventionRepo
	equipmentRepo    *fakeEquipmentRepo
	traitementRepo   *fakeTraitementRepo
}

func newInterventionFixture(t *testing.T) *interventionFixture {
	t.Helper()
	f := &interventionFixture{
		interventionRepo: newFakeInterventionRepo(),
		equipmentRepo:    newFakeEquipmentRepo(),
		traitementRepo:   newFakeTraitementRepo(),
	}
	f.service = NewInterventionService(f.interventionRepo, f.equipmentRepo, f.traitementRepo, zap.NewNop())
	return f
}

func (f *interventionFixture) addEquipment(t *testing.T, name string) uint64 {
	t.Helper()
	id, err := f.equipmentRepo.CreateEquipment(context.Background(), name, "press", "active")
	require.NoError(t, err)
	return id
}

func validSubmission(equipmentID uint64) dto.SubmitInterventionDTO {
	return dto.SubmitInterventionDTO{
		EquipmentID: equipmentID,
		StopType:    "AM",
		ProblemType: "mechanical",
		Priority:    "high",
		Description: "hydraulic press leaking oil",
	}
}

func TestSubmitIntervention(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	result, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.InterventionID)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "INT-000001", result.Reference)

	stored, err := f.interventionRepo.FindIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPending, stored.Status)
	assert.Nil(t, stored.AssignedTechnicianID)
}

func TestSubmitInterventionUnknownEquipment(t *testing.T) {
	f := newInterventionFixture(t)

	_, err := f.service.SubmitIntervention(context.Background(), validSubmission(42))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmitInterventionBadEnums(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	payload := validSubmission(equipmentID)
	payload.StopType = "ZZ"
	_, err := f.service.SubmitIntervention(context.Background(), payload)
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	payload = validSubmission(equipmentID)
	payload.Priority = "critical"
	_, err = f.service.SubmitIntervention(context.Background(), payload)
	assert.ErrorAs(t, err, &invalid)
}

func TestAmendPendingIntervention(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	result, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)

	desc := "leak is worse than reported"
	priority := "medium"
	amended, err := f.service.AmendPendingIntervention(context.Background(), result.InterventionID, dto.AmendInterventionDTO{
		Description: &desc,
		Priority:    &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, amended.Description)
	assert.Equal(t, lifecycle.PriorityMedium, amended.Priority)
	// Amendment never touches the lifecycle.
	assert.Equal(t, lifecycle.StatusPending, amended.Status)
}

func TestAmendRejectedOnceTreated(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	result, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)

	require.NoError(t, f.interventionRepo.UpdateStatus(context.Background(), nil, result.InterventionID, lifecycle.StatusInProgress))

	desc := "too late"
	_, err = f.service.AmendPendingIntervention(context.Background(), result.InterventionID, dto.AmendInterventionDTO{
		Description: &desc,
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAmendUnknownIntervention(t *testing.T) {
	f := newInterventionFixture(t)

	desc := "anything"
	_, err := f.service.AmendPendingIntervention(context.Background(), 7, dto.AmendInterventionDTO{Description: &desc})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTrackInterventionHidesNotesUntilCompleted(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	result, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)

	notes := "replaced the seal"
	f.interventionRepo.interventions[result.InterventionID].TechnicianNotes = &notes

	view, err := f.service.TrackIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	assert.Equal(t, "INT-000001", view.Reference)
	assert.Equal(t, "Waiting for assignment", view.StatusMessage)
	assert.False(t, view.TechnicianAssigned)
	assert.Nil(t, view.TechnicianNotes)

	require.NoError(t, f.interventionRepo.UpdateStatus(context.Background(), nil, result.InterventionID, lifecycle.StatusCompleted))

	view, err = f.service.TrackIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	assert.Equal(t, "Intervention completed", view.StatusMessage)
	require.NotNil(t, view.TechnicianNotes)
	assert.Equal(t, notes, *view.TechnicianNotes)
}

func TestStatusSummary(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	for i := 0; i < 3; i++ {
		_, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
		require.NoError(t, err)
	}
	require.NoError(t, f.interventionRepo.UpdateStatus(context.Background(), nil, 1, lifecycle.StatusCompleted))

	summary, err := f.service.StatusSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalInterventions)
	assert.Equal(t, 2, summary.StatusSummary["pending"])
	assert.Equal(t, 1, summary.StatusSummary["completed"])
	// Zero buckets are reported, not omitted.
	assert.Equal(t, 0, summary.StatusSummary["cancelled"])
	assert.Equal(t, 0, summary.StatusSummary["postponed"])
}

// One entry per equipment, carrying the status of its newest intervention.
func TestEquipmentProblemFeedDedup(t *testing.T) {
	f := newInterventionFixture(t)
	pressID := f.addEquipment(t, "Press 01")
	latheID := f.addEquipment(t, "Lathe 02")

	_, err := f.service.SubmitIntervention(context.Background(), validSubmission(pressID))
	require.NoError(t, err)
	_, err = f.service.SubmitIntervention(context.Background(), validSubmission(latheID))
	require.NoError(t, err)
	_, err = f.service.SubmitIntervention(context.Background(), validSubmission(pressID))
	require.NoError(t, err)
	require.NoError(t, f.interventionRepo.UpdateStatus(context.Background(), nil, 3, lifecycle.StatusInProgress))

	feed, err := f.service.EquipmentProblemFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, feed.TotalEquipmentsWithProblems)
	require.Len(t, feed.Equipments, 2)

	// Newest intervention first, so the press shows its in-progress status.
	assert.Equal(t, pressID, feed.Equipments[0].EquipmentID)
	assert.Equal(t, "in_progress", feed.Equipments[0].CurrentStatus)
	assert.Equal(t, latheID, feed.Equipments[1].EquipmentID)
	assert.Equal(t, "pending", feed.Equipments[1].CurrentStatus)

	assert.Equal(t, 1, feed.StatusSummary["in_progress"])
	assert.Equal(t, 1, feed.StatusSummary["pending"])
	assert.Equal(t, 0, feed.StatusSummary["completed"])
}

func TestGetRecentInterventionsLimit(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	for i := 0; i < defaultRecentFeedLimit+5; i++ {
		_, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
		require.NoError(t, err)
	}

	// Zero means the default.
	views, err := f.service.GetRecentInterventions(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, views, defaultRecentFeedLimit)
	// Newest first.
	assert.Equal(t, lifecycle.Reference(uint64(defaultRecentFeedLimit+5)), views[0].Reference)

	views, err = f.service.GetRecentInterventions(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestGetRecentInterventionsCapsLimit(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	for i := 0; i < maxRecentFeedLimit+10; i++ {
		_, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
		require.NoError(t, err)
	}

	views, err := f.service.GetRecentInterventions(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, views, maxRecentFeedLimit)
}

func TestGetInterventionDetailCarriesLatestTraitement(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	result, err := f.service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)

	detail, err := f.service.GetIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	assert.Nil(t, detail.LatestTraitement)

	firstDesc := "tightened the fitting"
	_, err = f.traitementRepo.CreateTraitement(context.Background(), nil, 5, dto.CreateTraitementDTO{
		InterventionID:    result.InterventionID,
		RepairDescription: &firstDesc,
		FinalStatus:       "in_progress",
	})
	require.NoError(t, err)

	secondDesc := "replaced the hose"
	secondID, err := f.traitementRepo.CreateTraitement(context.Background(), nil, 5, dto.CreateTraitementDTO{
		InterventionID:    result.InterventionID,
		RepairDescription: &secondDesc,
		FinalStatus:       "completed",
	})
	require.NoError(t, err)

	detail, err = f.service.GetIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	require.NotNil(t, detail.LatestTraitement)
	assert.Equal(t, secondID, detail.LatestTraitement.ID)
	assert.Equal(t, lifecycle.StatusCompleted, detail.LatestTraitement.FinalStatus)
}

// Serves stale pending reads for a while, the way a concurrent treatment
// committing between the service's read and its UPDATE would.
type staleReadInterventionRepo struct {
	*fakeInterventionRepo
	staleReads int
}

func (r *staleReadInterventionRepo) FindIntervention(ctx context.Context, id uint64) (*entities.Intervention, error) {
	in, err := r.fakeInterventionRepo.FindIntervention(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.staleReads > 0 {
		r.staleReads--
		in.Status = lifecycle.StatusPending
	}
	return in, nil
}

func TestAmendLosingRaceWithTreatmentConflicts(t *testing.T) {
	interventionRepo := newFakeInterventionRepo()
	equipmentRepo := newFakeEquipmentRepo()
	stale := &staleReadInterventionRepo{fakeInterventionRepo: interventionRepo, staleReads: 1}
	service := NewInterventionService(stale, equipmentRepo, newFakeTraitementRepo(), zap.NewNop())

	equipmentID, err := equipmentRepo.CreateEquipment(context.Background(), "Press 01", "press", "active")
	require.NoError(t, err)

	result, err := service.SubmitIntervention(context.Background(), validSubmission(equipmentID))
	require.NoError(t, err)

	// The stored record has already moved on; only the first read lies.
	require.NoError(t, interventionRepo.UpdateStatus(context.Background(), nil, result.InterventionID, lifecycle.StatusInProgress))

	desc := "lost the race"
	_, err = service.AmendPendingIntervention(context.Background(), result.InterventionID, dto.AmendInterventionDTO{Description: &desc})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := interventionRepo.FindIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	assert.NotEqual(t, desc, stored.Description)
}

func TestEquipmentsStatusDefaultsToOperational(t *testing.T) {
	f := newInterventionFixture(t)
	pressID := f.addEquipment(t, "Press 01")
	latheID := f.addEquipment(t, "Lathe 02")

	f.equipmentRepo.setLatestIntervention(pressID, "in_progress", time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC))

	board, err := f.service.EquipmentsStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)

	assert.Equal(t, pressID, board[0].EquipmentID)
	assert.Equal(t, "in_progress", board[0].CurrentStatus)
	require.NotNil(t, board[0].LastInterventionDate)
	assert.Equal(t, "2026-08-20 14:30", *board[0].LastInterventionDate)

	assert.Equal(t, latheID, board[1].EquipmentID)
	assert.Equal(t, lifecycle.EquipmentOperational, board[1].CurrentStatus)
	assert.Nil(t, board[1].LastInterventionDate)
}

func TestEquipmentsStatusSummaryCountsOperational(t *testing.T) {
	f := newInterventionFixture(t)
	pressID := f.addEquipment(t, "Press 01")
	f.addEquipment(t, "Lathe 02")
	f.addEquipment(t, "Mill 03")

	f.equipmentRepo.setLatestIntervention(pressID, "pending", time.Now())

	summary, err := f.service.EquipmentsStatusSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalEquipments)
	assert.Equal(t, 2, summary.StatusSummary[lifecycle.EquipmentOperational])
	assert.Equal(t, 1, summary.StatusSummary["pending"])
	// Known lifecycle buckets stay present at zero.
	assert.Equal(t, 0, summary.StatusSummary["completed"])
	assert.Equal(t, 0, summary.StatusSummary["in_progress"])
}

func TestSubmitKeepsRequesterContact(t *testing.T) {
	f := newInterventionFixture(t)
	equipmentID := f.addEquipment(t, "Press 01")

	payload := validSubmission(equipmentID)
	name := "Jordan"
	email := "jordan@plant.local"
	payload.RequesterName = &name
	payload.RequesterEmail = &email

	result, err := f.service.SubmitIntervention(context.Background(), payload)
	require.NoError(t, err)

	stored, err := f.interventionRepo.FindIntervention(context.Background(), result.InterventionID)
	require.NoError(t, err)
	require.NotNil(t, stored.RequesterName)
	assert.Equal(t, name, *stored.RequesterName)
	require.NotNil(t, stored.RequesterEmail)
	assert.Equal(t, email, *stored.RequesterEmail)
}
