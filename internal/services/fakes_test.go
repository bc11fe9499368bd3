package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

// In-memory repository doubles. They mirror the SQL behavior the services
// rely on: not-found sentinels, assign-if-unset semantics, latest-traitement
// ordering by id.

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type latestIntervention struct {
	status string
	at     time.Time
}

type fakeEquipmentRepo struct {
	equipments map[uint64]*entities.Equipment
	latest     map[uint64]latestIntervention
	nextID     uint64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{
		equipments: make(map[uint64]*entities.Equipment),
		latest:     make(map[uint64]latestIntervention),
		nextID:     1,
	}
}

func (r *fakeEquipmentRepo) setLatestIntervention(equipmentID uint64, status string, at time.Time) {
	r.latest[equipmentID] = latestIntervention{status: status, at: at}
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	var list []entities.Equipment
	for _, e := range r.equipments {
		list = append(list, *e)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, name, eqType, inService string) (uint64, error) {
	id := r.nextID
	r.nextID++
	r.equipments[id] = &entities.Equipment{ID: id, Name: name, Type: eqType, InService: inService}
	return id, nil
}

func (r *fakeEquipmentRepo) GetEquipmentStatuses(_ context.Context) ([]repositories.EquipmentStatusRow, error) {
	var rows []repositories.EquipmentStatusRow
	for id := uint64(1); id < r.nextID; id++ {
		e, ok := r.equipments[id]
		if !ok {
			continue
		}
		row := repositories.EquipmentStatusRow{
			EquipmentID: e.ID,
			Name:        e.Name,
			Type:        e.Type,
			InService:   e.InService,
		}
		if latest, ok := r.latest[id]; ok {
			status := latest.status
			at := latest.at
			row.Status = &status
			row.LastInterventionAt = &at
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type fakeUserRepo struct {
	users  map[uint64]*entities.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*entities.User), nextID: 1}
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindUserByLogin(_ context.Context, login string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user entities.User) (uint64, error) {
	id := r.nextID
	r.nextID++
	user.ID = id
	r.users[id] = &user
	return id, nil
}

type fakeInterventionRepo struct {
	interventions map[uint64]*entities.Intervention
	nextID        uint64
}

func newFakeInterventionRepo() *fakeInterventionRepo {
	return &fakeInterventionRepo{interventions: make(map[uint64]*entities.Intervention), nextID: 1}
}

func (r *fakeInterventionRepo) CreateIntervention(_ context.Context, in entities.Intervention) (uint64, error) {
	id := r.nextID
	r.nextID++
	in.ID = id
	now := time.Now()
	in.CreatedAt = &now
	r.interventions[id] = &in
	return id, nil
}

func (r *fakeInterventionRepo) FindIntervention(_ context.Context, id uint64) (*entities.Intervention, error) {
	in, ok := r.interventions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *in
	return &copied, nil
}

func (r *fakeInterventionRepo) AmendIntervention(_ context.Context, id uint64, payload dto.AmendInterventionDTO) error {
	in, ok := r.interventions[id]
	// The real UPDATE carries a pending predicate, so a non-pending record
	// matches nothing.
	if !ok || in.Status != lifecycle.StatusPending {
		return apperrors.ErrNotFound
	}
	if payload.Description != nil {
		in.Description = *payload.Description
	}
	if payload.Priority != nil {
		in.Priority = lifecycle.Priority(*payload.Priority)
	}
	if payload.ProblemType != nil {
		in.ProblemType = lifecycle.ProblemType(*payload.ProblemType)
	}
	if payload.PhotoPath != nil {
		in.PhotoPath = payload.PhotoPath
	}
	if payload.RequesterName != nil {
		in.RequesterName = payload.RequesterName
	}
	if payload.RequesterEmail != nil {
		in.RequesterEmail = payload.RequesterEmail
	}
	if payload.RequesterPhone != nil {
		in.RequesterPhone = payload.RequesterPhone
	}
	return nil
}

func (r *fakeInterventionRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uint64, status lifecycle.Status) error {
	in, ok := r.interventions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	in.Status = status
	return nil
}

func (r *fakeInterventionRepo) AssignTechnicianIfUnset(_ context.Context, _ pgx.Tx, id uint64, technicianID uint64) error {
	in, ok := r.interventions[id]
	if !ok {
		return nil
	}
	if in.AssignedTechnicianID == nil {
		in.AssignedTechnicianID = &technicianID
	}
	return nil
}

func (r *fakeInterventionRepo) GetInterventions(_ context.Context, limit uint64) ([]entities.Intervention, error) {
	var list []entities.Intervention
	// Newest first by id; ids are assigned in creation order.
	for id := r.nextID - 1; id >= 1; id-- {
		if in, ok := r.interventions[id]; ok {
			list = append(list, *in)
		}
		if limit > 0 && uint64(len(list)) >= limit {
			break
		}
	}
	return list, nil
}

func (r *fakeInterventionRepo) GetInterventionsTreatedBy(_ context.Context, _ uint64) ([]entities.Intervention, error) {
	return nil, nil
}

func (r *fakeInterventionRepo) GetStatuses(_ context.Context) ([]string, error) {
	var statuses []string
	for _, in := range r.interventions {
		statuses = append(statuses, string(in.Status))
	}
	return statuses, nil
}

func (r *fakeInterventionRepo) GetEquipmentProblemRows(_ context.Context) ([]repositories.EquipmentProblemRow, error) {
	var rows []repositories.EquipmentProblemRow
	for id := r.nextID - 1; id >= 1; id-- {
		in, ok := r.interventions[id]
		if !ok {
			continue
		}
		name := ""
		if in.Equipment != nil {
			name = in.Equipment.Name
		}
		rows = append(rows, repositories.EquipmentProblemRow{
			EquipmentID:   in.EquipmentID,
			EquipmentName: name,
			Status:        string(in.Status),
			CreatedAt:     *in.CreatedAt,
		})
	}
	return rows, nil
}

type fakeTraitementRepo struct {
	traitements map[uint64]*entities.Traitement
	nextID      uint64
}

func newFakeTraitementRepo() *fakeTraitementRepo {
	return &fakeTraitementRepo{traitements: make(map[uint64]*entities.Traitement), nextID: 1}
}

func (r *fakeTraitementRepo) CreateTraitement(_ context.Context, _ pgx.Tx, technicianID uint64, payload dto.CreateTraitementDTO) (uint64, error) {
	id := r.nextID
	r.nextID++
	now := time.Now()
	r.traitements[id] = &entities.Traitement{
		ID:                   id,
		InterventionID:       payload.InterventionID,
		TechnicianID:         technicianID,
		RepairDuration:       payload.RepairDuration,
		MachineDowntimeHours: payload.MachineDowntimeHours,
		RepairDescription:    payload.RepairDescription,
		PartsChanged:         payload.PartsChanged,
		FixType:              payload.FixType,
		SpecialistTransfer:   payload.SpecialistTransfer,
		FinalStatus:          lifecycle.Status(payload.FinalStatus),
		BaseEntity:           types.BaseEntity{CreatedAt: &now},
	}
	return id, nil
}

func (r *fakeTraitementRepo) FindTraitement(_ context.Context, id uint64) (*entities.Traitement, error) {
	t, ok := r.traitements[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTraitementRepo) FindTraitementOwnedBy(_ context.Context, id uint64, technicianID uint64) (*entities.Traitement, error) {
	t, ok := r.traitements[id]
	if !ok || t.TechnicianID != technicianID {
		return nil, apperrors.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTraitementRepo) UpdateTraitement(_ context.Context, _ pgx.Tx, id uint64, payload dto.UpdateTraitementDTO) error {
	t, ok := r.traitements[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if payload.RepairDuration != nil {
		t.RepairDuration = payload.RepairDuration
	}
	if payload.MachineDowntimeHours != nil {
		t.MachineDowntimeHours = payload.MachineDowntimeHours
	}
	if payload.RepairDescription != nil {
		t.RepairDescription = payload.RepairDescription
	}
	if payload.PartsChanged != nil {
		t.PartsChanged = payload.PartsChanged
	}
	if payload.FixType != nil {
		t.FixType = payload.FixType
	}
	if payload.SpecialistTransfer != nil {
		t.SpecialistTransfer = *payload.SpecialistTransfer
	}
	if payload.FinalStatus != nil {
		t.FinalStatus = lifecycle.Status(*payload.FinalStatus)
	}
	return nil
}

func (r *fakeTraitementRepo) GetTraitementsByTechnician(_ context.Context, technicianID uint64) ([]entities.Traitement, error) {
	var list []entities.Traitement
	for id := r.nextID - 1; id >= 1; id-- {
		if t, ok := r.traitements[id]; ok && t.TechnicianID == technicianID {
			list = append(list, *t)
		}
	}
	return list, nil
}

func (r *fakeTraitementRepo) FindLatestByIntervention(_ context.Context, interventionID uint64) (*entities.Traitement, error) {
	for id := r.nextID - 1; id >= 1; id-- {
		if t, ok := r.traitements[id]; ok && t.InterventionID == interventionID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeTraitementRepo) CountByTechnician(_ context.Context, technicianID uint64) (int, error) {
	count := 0
	for _, t := range r.traitements {
		if t.TechnicianID == technicianID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTraitementRepo) CountDistinctInterventionsByTechnician(_ context.Context, technicianID uint64) (int, error) {
	seen := make(map[uint64]bool)
	for _, t := range r.traitements {
		if t.TechnicianID == technicianID {
			seen[t.InterventionID] = true
		}
	}
	return len(seen), nil
}
