package handlers

import (
	"fmt"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

type userResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	StationID *uint     `json:"stationId"`
	RegionID  *uint     `json:"regionId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		StationID: u.StationID,
		RegionID:  u.RegionID,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type photoResponse struct {
	Category    string `json:"category"`
	Index       int    `json:"index"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

type historyResponse struct {
	ActorID *uint     `json:"actorId"`
	Action  string    `json:"action"`
	Status  string    `json:"status"`
	Finding string    `json:"finding,omitempty"`
	Comment string    `json:"comment,omitempty"`
	At      time.Time `json:"at"`
}

// requestResponse is the public shape of a verification request. The OTP
// code is never part of it.
type requestResponse struct {
	ID              string            `json:"id"`
	LandlordName    string            `json:"landlordName"`
	LandlordPhone   string            `json:"landlordPhone"`
	Address         string            `json:"address"`
	TenantName      string            `json:"tenantName"`
	TenantPhones    []string          `json:"tenantPhones"`
	FatherName      string            `json:"fatherName"`
	NationalID      string            `json:"nationalId"`
	PurposeOfStay   string            `json:"purposeOfStay"`
	PreviousAddress string            `json:"previousAddress"`
	FamilyMembers   *int              `json:"familyMembers"`
	StationID       uint              `json:"stationId"`
	RegionID        uint              `json:"regionId"`
	Status          string            `json:"status"`
	AssignedTo      *uint             `json:"assignedTo"`
	AssignedBy      *uint             `json:"assignedBy"`
	OTPVerifiedAt   *time.Time        `json:"otpVerifiedAt"`
	Photos          []photoResponse   `json:"photos"`
	History         []historyResponse `json:"history"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func toRequestResponse(r *domain.VerificationRequest) requestResponse {
	phones := r.TenantPhones
	if phones == nil {
		phones = []string{}
	}
	resp := requestResponse{
		ID:              r.ID.String(),
		LandlordName:    r.LandlordName,
		LandlordPhone:   r.LandlordPhone,
		Address:         r.Address,
		TenantName:      r.TenantName,
		TenantPhones:    phones,
		FatherName:      r.FatherName,
		NationalID:      r.NationalID,
		PurposeOfStay:   r.PurposeOfStay,
		PreviousAddress: r.PreviousAddress,
		FamilyMembers:   r.FamilyMembers,
		StationID:       r.StationID,
		RegionID:        r.RegionID,
		Status:          string(r.Status),
		AssignedTo:      r.AssignedTo,
		AssignedBy:      r.AssignedBy,
		OTPVerifiedAt:   r.OTP.VerifiedAt,
		Photos:          make([]photoResponse, 0, len(r.Photos)),
		History:         make([]historyResponse, 0, len(r.History)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, p := range r.Photos {
		resp.Photos = append(resp.Photos, photoResponse{
			Category:    string(p.Category),
			Index:       p.Index,
			ContentType: p.ContentType,
			Filename:    p.Filename,
			Size:        p.Size,
			URL:         fmt.Sprintf("/landlord/image/%s/%s/%d", r.ID, p.Category, p.Index),
		})
	}
	for _, h := range r.History {
		resp.History = append(resp.History, historyResponse{
			ActorID: h.ActorID,
			Action:  h.Action,
			Status:  string(h.Status),
			Finding: string(h.Finding),
			Comment: h.Comment,
			At:      h.At,
		})
	}
	return resp
}

func toRequestResponses(reqs []*domain.VerificationRequest) []requestResponse {
	out := make([]requestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequestResponse(r))
	}
	return out
}

type notificationResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Meta      map[string]any `json:"meta"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toNotificationResponses(ns []*domain.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			Meta:      n.Meta,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
