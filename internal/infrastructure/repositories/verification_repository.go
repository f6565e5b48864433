package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VerificationRepositoryImpl implements domain.VerificationRepository using GORM
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) domain.VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

var searchColumns = []string{
	"landlord_name",
	"landlord_phone",
	"address",
	"tenant_name",
	"CAST(tenant_phones AS TEXT)",
	"father_name",
	"national_id",
	"purpose_of_stay",
	"previous_address",
}

var activeLeadStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusSubmitted),
	string(domain.StatusReturned),
}

var statsStatuses = []string{
	string(domain.StatusSubmitted),
	string(domain.StatusAssigned),
	string(domain.StatusReturned),
	string(domain.StatusVerified),
	string(domain.StatusFlagged),
}

var terminalStatuses = []string{
	string(domain.StatusVerified),
	string(domain.StatusFlagged),
}

// Create implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) Create(ctx context.Context, req *domain.VerificationRequest) error {
	row := r.domainToDB(req)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	req.CreatedAt = row.CreatedAt
	req.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error) {
	db := r.db.WithContext(ctx)

	var row DBVerificationRequest
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	req := r.dbToDomain(&row)

	var history []DBHistoryEntry
	if err := db.Where("request_id = ?", id).Order("id ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	req.History = make([]domain.HistoryEntry, 0, len(history))
	for _, h := range history {
		req.History = append(req.History, domain.HistoryEntry{
			ID:      h.ID,
			ActorID: h.ActorID,
			Action:  h.Action,
			Status:  domain.Status(h.Status),
			Finding: domain.Status(h.Finding),
			Comment: h.Comment,
			At:      h.CreatedAt,
		})
	}

	var photos []DBPhoto
	if err := db.Where("request_id = ?", id).Order("category ASC, idx ASC").Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}
	req.Photos = make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		req.Photos = append(req.Photos, domain.Photo{
			Category:    domain.PhotoCategory(p.Category),
			Index:       p.Idx,
			BlobKey:     p.BlobKey,
			ContentType: p.ContentType,
			Filename:    p.Filename,
			Size:        p.Size,
		})
	}

	return req, nil
}

// UpdateDetails implements domain.VerificationRepository. Photos replace
// any existing photos of the same category.
func (r *VerificationRepositoryImpl) UpdateDetails(ctx context.Context, id uuid.UUID, details domain.TenantDetails, photos []domain.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBVerificationRequest{}).
			Where("id = ? AND status = ?", id, string(domain.StatusPending)).
			Updates(map[string]interface{}{
				"tenant_name":      details.TenantName,
				"tenant_phones":    datatypes.JSONSlice[string](nonNil(details.TenantPhones)),
				"father_name":      details.FatherName,
				"national_id":      details.NationalID,
				"purpose_of_stay":  details.PurposeOfStay,
				"previous_address": details.PreviousAddress,
				"family_members":   details.FamilyMembers,
				"updated_at":       time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.missingOr(tx, id, domain.ErrInvalidTransition)
		}

		replaced := map[domain.PhotoCategory]bool{}
		var released []string
		for _, p := range photos {
			if !replaced[p.Category] {
				var keys []string
				slot := tx.Model(&DBPhoto{}).Where("request_id = ? AND category = ?", id, string(p.Category))
				if err := slot.Pluck("blob_key", &keys).Error; err != nil {
					return err
				}
				released = append(released, keys...)
				if err := tx.Where("request_id = ? AND category = ?", id, string(p.Category)).Delete(&DBPhoto{}).Error; err != nil {
					return err
				}
				replaced[p.Category] = true
			}
			row := DBPhoto{
				RequestID:   id,
				Category:    string(p.Category),
				Idx:         p.Index,
				BlobKey:     p.BlobKey,
				ContentType: p.ContentType,
				Filename:    p.Filename,
				Size:        p.Size,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return releaseBlobs(tx, released)
	})
}

// releaseBlobs deletes the given blobs once no photo refers to them.
// Blobs stored by a completion that later failed are not tracked here and
// stay until a photo reuses the same content.
func releaseBlobs(tx *gorm.DB, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	inUse := tx.Model(&DBPhoto{}).Select("blob_key")
	return tx.Where("digest IN ?", keys).Where("digest NOT IN (?)", inUse).Delete(&DBBlob{}).Error
}

// UpdateOTP implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) UpdateOTP(ctx context.Context, id uuid.UUID, otp domain.OTP) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&DBVerificationRequest{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]interface{}{
			"otp_code":       otp.Code,
			"otp_expires_at": otp.ExpiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOr(db, id, domain.ErrInvalidTransition)
	}
	return nil
}

// ApplyTransition implements domain.VerificationRepository. The status
// update only applies when the row still holds t.From; the history entry is
// appended in the same transaction.
func (r *VerificationRepositoryImpl) ApplyTransition(ctx context.Context, t domain.Transition) error {
	at := t.Entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      string(t.To),
			"assigned_to": t.AssignedTo,
			"updated_at":  at,
		}
		if t.AssignedTo == nil {
			updates["assigned_to"] = nil
		}
		if t.AssignedBy != nil {
			updates["assigned_by"] = *t.AssignedBy
		}
		if t.OTPVerifiedAt != nil {
			updates["otp_verified_at"] = *t.OTPVerifiedAt
			updates["otp_code"] = ""
		}

		res := tx.Model(&DBVerificationRequest{}).
			Where("id = ? AND status = ?", t.RequestID, string(t.From)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.missingOr(tx, t.RequestID, domain.ErrStaleStatus)
		}

		entry := DBHistoryEntry{
			RequestID: t.RequestID,
			ActorID:   t.Entry.ActorID,
			Action:    t.Entry.Action,
			Status:    string(t.To),
			Finding:   string(t.Entry.Finding),
			Comment:   t.Entry.Comment,
			CreatedAt: at,
		}
		return tx.Create(&entry).Error
	})
}

// List implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) List(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	q := r.scoped(r.db.WithContext(ctx), scope)
	q = applySearch(q, filter.SearchText)
	if filter.From != nil {
		q = q.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", filter.To.UTC())
	}
	return r.find(q.Order("created_at DESC, id DESC"))
}

// ListTerminal implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) ListTerminal(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	q := r.scoped(r.db.WithContext(ctx), scope).Where("status IN ?", terminalStatuses)
	q = applySearch(q, filter.SearchText)
	if filter.From != nil {
		q = q.Where("updated_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("updated_at <= ?", filter.To.UTC())
	}
	return r.find(q.Order("updated_at DESC, id DESC"))
}

// DailyStats implements domain.VerificationRepository. Days are UTC
// calendar days of creation, newest first. Counting happens in the
// database; only one row per day and status comes back.
func (r *VerificationRepositoryImpl) DailyStats(ctx context.Context, scope domain.RequestScope) ([]domain.DayStats, error) {
	day := r.dayExpr("created_at")
	var rows []struct {
		Day    string
		Status string
		Total  int64
	}
	err := r.scoped(r.db.WithContext(ctx), scope).
		Select(day+" AS day, status, COUNT(*) AS total").
		Where("status IN ?", statsStatuses).
		Group(day + ", status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*domain.DayStats{}
	for _, row := range rows {
		s, ok := byDay[row.Day]
		if !ok {
			s = &domain.DayStats{Day: row.Day}
			byDay[row.Day] = s
		}
		n := int(row.Total)
		switch domain.Status(row.Status) {
		case domain.StatusSubmitted:
			s.Submitted += n
		case domain.StatusAssigned:
			s.Assigned += n
		case domain.StatusReturned:
			s.Returned += n
		case domain.StatusVerified:
			s.Verified += n
		case domain.StatusFlagged:
			s.Flagged += n
		}
	}

	stats := make([]domain.DayStats, 0, len(byDay))
	for _, s := range byDay {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Day > stats[j].Day })
	return stats, nil
}

// CountAssigned implements domain.VerificationRepository. Only requests
// still waiting on the officer's finding count.
func (r *VerificationRepositoryImpl) CountAssigned(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBVerificationRequest{}).
		Where("assigned_to = ? AND status = ?", userID, string(domain.StatusAssigned)).
		Count(&count).Error
	return count, err
}

// dayExpr renders column as a UTC YYYY-MM-DD string in the current dialect
func (r *VerificationRepositoryImpl) dayExpr(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "to_char(" + column + " AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', " + column + ")"
}

func (r *VerificationRepositoryImpl) scoped(db *gorm.DB, scope domain.RequestScope) *gorm.DB {
	q := db.Model(&DBVerificationRequest{})
	if scope.StationID != nil {
		q = q.Where("station_id = ?", *scope.StationID)
	}
	if scope.RegionID != nil {
		q = q.Where("region_id = ?", *scope.RegionID)
	}
	if scope.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *scope.AssignedTo)
	}
	if scope.StationLead != nil {
		lead := *scope.StationLead
		q = q.Where(
			db.Where("status IN ?", activeLeadStatuses).
				Or("status = ? AND (assigned_to = ? OR assigned_by = ?)", string(domain.StatusAssigned), lead, lead),
		)
	}
	return q
}

func applySearch(q *gorm.DB, text string) *gorm.DB {
	text = strings.TrimSpace(text)
	if text == "" {
		return q
	}
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	clauses := make([]string, len(searchColumns))
	args := make([]interface{}, len(searchColumns))
	for i, col := range searchColumns {
		clauses[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *VerificationRepositoryImpl) find(q *gorm.DB) ([]*domain.VerificationRequest, error) {
	var rows []DBVerificationRequest
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.VerificationRequest, 0, len(rows))
	for i := range rows {
		out = append(out, r.dbToDomain(&rows[i]))
	}
	return out, nil
}

// missingOr distinguishes a lost compare-and-swap from an absent row
func (r *VerificationRepositoryImpl) missingOr(db *gorm.DB, id uuid.UUID, err error) error {
	var statuses []string
	if perr := db.Model(&DBVerificationRequest{}).Where("id = ?", id).Pluck("status", &statuses).Error; perr != nil {
		return perr
	}
	if len(statuses) == 0 {
		return domain.ErrRequestNotFound
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return domain.TransitionError(domain.Status(statuses[0]))
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *VerificationRepositoryImpl) domainToDB(req *domain.VerificationRequest) *DBVerificationRequest {
	return &DBVerificationRequest{
		ID:              req.ID,
		LandlordName:    req.LandlordName,
		LandlordPhone:   req.LandlordPhone,
		Address:         req.Address,
		TenantName:      req.TenantName,
		TenantPhones:    datatypes.JSONSlice[string](nonNil(req.TenantPhones)),
		FatherName:      req.FatherName,
		NationalID:      req.NationalID,
		PurposeOfStay:   req.PurposeOfStay,
		PreviousAddress: req.PreviousAddress,
		FamilyMembers:   req.FamilyMembers,
		StationID:       req.StationID,
		RegionID:        req.RegionID,
		Status:          string(req.Status),
		OTPCode:         req.OTP.Code,
		OTPExpiresAt:    req.OTP.ExpiresAt,
		OTPVerifiedAt:   req.OTP.VerifiedAt,
		AssignedTo:      req.AssignedTo,
		AssignedBy:      req.AssignedBy,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

func (r *VerificationRepositoryImpl) dbToDomain(row *DBVerificationRequest) *domain.VerificationRequest {
	return &domain.VerificationRequest{
		ID:            row.ID,
		LandlordName:  row.LandlordName,
		LandlordPhone: row.LandlordPhone,
		Address:       row.Address,
		TenantDetails: domain.TenantDetails{
			TenantName:      row.TenantName,
			TenantPhones:    nonNil(row.TenantPhones),
			FatherName:      row.FatherName,
			NationalID:      row.NationalID,
			PurposeOfStay:   row.PurposeOfStay,
			PreviousAddress: row.PreviousAddress,
			FamilyMembers:   row.FamilyMembers,
		},
		StationID: row.StationID,
		RegionID:  row.RegionID,
		Status:    domain.Status(row.Status),
		OTP: domain.OTP{
			Code:       row.OTPCode,
			ExpiresAt:  row.OTPExpiresAt,
			VerifiedAt: row.OTPVerifiedAt,
		},
		AssignedTo: row.AssignedTo,
		AssignedBy: row.AssignedBy,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
