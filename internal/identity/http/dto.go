package http

import (
	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
)

func profileDTO(p domain.Profile) authsdk.Profile {
	return authsdk.Profile{
		AccountID:          p.AccountID.String(),
		Email:              p.Email,
		FamilyName:         p.FamilyName,
		GivenName:          p.GivenName,
		FamilyNamePhonetic: p.FamilyNamePhonetic,
		GivenNamePhonetic:  p.GivenNamePhonetic,
		TenantID:           p.TenantID.String(),
		TenantCode:         p.TenantCode,
		TenantName:         p.TenantName,
		Role:               string(p.Role),
		MFAEnabled:         p.MFAEnabled,
	}
}

func invitationDTO(inv domain.Invitation) authsdk.Invitation {
	out := authsdk.Invitation{
		ID:             inv.ID.String(),
		TenantID:       inv.TenantID.String(),
		Email:          inv.Email,
		Role:           string(inv.Role),
		EmployeeNo:     inv.EmployeeNo,
		EmploymentType: string(inv.EmploymentType),
		ExpiresAt:      inv.ExpiresAt,
		MaxUses:        inv.MaxUses,
		UsedCount:      inv.UsedCount,
		Status:         string(inv.Status),
	}
	if out.EmploymentType == "" {
		out.EmploymentType = string(domain.EmploymentFulltime)
	}
	if inv.HireDate != nil {
		out.HireDate = inv.HireDate.Format(domain.DateLayout)
	}
	return out
}

func tenantDTO(t domain.Tenant) authsdk.Tenant {
	return authsdk.Tenant{
		ID:         t.ID.String(),
		Code:       t.Code,
		Name:       t.Name,
		Timezone:   t.Timezone,
		Currency:   t.Currency,
		MaxMembers: t.MaxMembers,
	}
}
