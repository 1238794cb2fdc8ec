package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// Registration redeems an invitation. Password and names are only
// accepted for a new account; an existing account joins with its current
// credentials.
type Registration struct {
	InvitationToken    string `json:"invitation_token"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	FamilyName         string `json:"family_name"`
	GivenName          string `json:"given_name"`
	FamilyNamePhonetic string `json:"family_name_phonetic"`
	GivenNamePhonetic  string `json:"given_name_phonetic"`
}

// newAccountFields checks what a brand new account needs, in the order a
// form would report it.
func (r Registration) newAccountFields() error {
	switch {
	case r.Password == "":
		return domain.MissingField("password")
	case r.GivenName == "":
		return domain.MissingField("given_name")
	case r.FamilyName == "":
		return domain.MissingField("family_name")
	}
	return CheckPassword(r.Password)
}

// inserted notes which records a registration inserted, as opposed to
// found already in place.
type inserted struct{ account, membership, employment bool }

type Registrar struct {
	Store     store.Store
	Ledger    *InvitationLedger
	Bootstrap *BootstrapService
	Hasher    *cryptox.PasswordHasher
	Audit     Auditor
	Now       func() time.Time
}

// Register turns an invitation into an account, a tenant membership and an
// employment record. Everything after invitation validation happens in one
// transaction: either the invitation is consumed and all records exist,
// or nothing changed.
func (s *Registrar) Register(ctx context.Context, r Registration) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Invitation must be usable; a lapsed one is marked expired here
	inv, err := s.Ledger.Validate(ctx, r.InvitationToken)
	if err != nil {
		return domain.Account{}, err
	}

	// 2. Exact email match
	if r.Email != inv.Email {
		log.Warn("registration email does not match invitation", slog.String("invitation_id", inv.ID.String()))
		return domain.Account{}, domain.ErrEmailMismatch
	}
	if isSystemEmail(inv.Email, s.Bootstrap.email()) {
		log.Warn("invitation targets the system identity", slog.String("invitation_id", inv.ID.String()))
		return domain.Account{}, fmt.Errorf("%w: reserved email", domain.ErrInvitationInvalid)
	}

	// 3. Hash before the transaction opens
	var passwordHash string
	_, err = s.Store.Accounts().GetAccountByEmail(ctx, inv.Email)
	switch {
	case err == nil:
		if r.Password != "" {
			return domain.Account{}, domain.ErrUnexpectedPassword
		}
	case errors.Is(err, store.ErrNotFound):
		if err := r.newAccountFields(); err != nil {
			return domain.Account{}, err
		}
		if passwordHash, err = s.Hasher.Hash(r.Password); err != nil {
			return domain.Account{}, err
		}
	default:
		return domain.Account{}, err
	}

	var (
		account domain.Account
		created inserted
		member  domain.Membership
		job     domain.Employment
	)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := clock(s.Now)

		// 4. Re-read in the transaction; it may have been consumed since
		cur, err := tx.Invitations().GetInvitationByID(ctx, inv.ID)
		if err != nil {
			return notFoundAs(err, domain.ErrInvitationNotFound)
		}
		if !cur.Usable(now) {
			return fmt.Errorf("%w: status %s", domain.ErrInvitationInvalid, cur.Status)
		}

		tenant, err := tx.Tenants().GetTenantByID(ctx, cur.TenantID)
		if err != nil {
			return notFoundAs(err, domain.ErrTenantNotFound)
		}
		members, err := tx.Memberships().CountMembers(ctx, tenant.ID)
		if err != nil {
			return err
		}
		if !tenant.HasCapacity(members) {
			return domain.ErrCapacityExceeded
		}

		// 5. System identity, created alongside if this is the first write
		systemID, err := s.Bootstrap.Resolve(ctx, tx)
		if err != nil {
			return err
		}

		// 6. Account
		account, err = tx.Accounts().GetAccountByEmail(ctx, cur.Email)
		switch {
		case err == nil:
			if r.Password != "" {
				return domain.ErrUnexpectedPassword
			}
		case errors.Is(err, store.ErrNotFound):
			if passwordHash == "" {
				return domain.MissingField("password")
			}
			account = domain.Account{
				ID:                 idx.New(),
				Email:              cur.Email,
				PasswordHash:       passwordHash,
				FamilyName:         r.FamilyName,
				GivenName:          r.GivenName,
				FamilyNamePhonetic: r.FamilyNamePhonetic,
				GivenNamePhonetic:  r.GivenNamePhonetic,
				Status:             domain.AccountActive,
				Stamp:              domain.NewStamp(now, systemID),
			}
			if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
				return err
			}
			created.account = true
		default:
			return err
		}

		// 7. Membership
		member, err = tx.Memberships().GetMembership(ctx, account.ID, tenant.ID)
		if errors.Is(err, store.ErrNotFound) {
			member = domain.Membership{
				ID:        idx.New(),
				AccountID: account.ID,
				TenantID:  tenant.ID,
				Role:      cur.Role,
				JoinedAt:  now,
				Stamp:     domain.NewStamp(now, systemID),
			}
			err = tx.Memberships().CreateMembership(ctx, member)
			created.membership = err == nil
		}
		if err != nil {
			return err
		}

		// 8. Employment, keyed by employee number within the tenant
		job, err = tx.Employments().GetEmploymentByEmployeeNo(ctx, tenant.ID, cur.EmployeeNo)
		switch {
		case err == nil:
			if job.AccountID != account.ID {
				return fmt.Errorf("%w: employee number %s belongs to another account", domain.ErrInvitationInvalid, cur.EmployeeNo)
			}
		case errors.Is(err, store.ErrNotFound):
			job = domain.Employment{
				ID:         idx.New(),
				TenantID:   tenant.ID,
				AccountID:  account.ID,
				EmployeeNo: cur.EmployeeNo,
				Type:       cur.EmploymentType,
				HireDate:   domain.Today(now, tenant.Timezone),
				Stamp:      domain.NewStamp(now, systemID),
			}
			if job.Type == "" {
				job.Type = domain.EmploymentFulltime
			}
			if cur.HireDate != nil {
				job.HireDate = *cur.HireDate
			}
			if err := tx.Employments().CreateEmployment(ctx, job); err != nil {
				return err
			}
			created.employment = true
		default:
			return err
		}

		// 9. Consume last so a failure above leaves the invitation usable
		return s.Ledger.In(tx).Consume(ctx, cur, account.ID)
	})
	if err != nil {
		if _, ok := domain.AsError(err); !ok {
			log.Error("registration failed", slog.String("invitation_id", inv.ID.String()), slog.Any("error", err))
		}
		return domain.Account{}, err
	}

	log.Info("invitation redeemed",
		slog.String("invitation_id", inv.ID.String()),
		slog.String("account_id", account.ID.String()),
		slog.String("tenant_id", inv.TenantID.String()),
		slog.Bool("new_account", created.account),
	)

	s.audit(ctx, inv, account, member, job, created)
	return account, nil
}

func (s *Registrar) audit(
	ctx context.Context,
	inv domain.Invitation,
	account domain.Account,
	member domain.Membership,
	job domain.Employment,
	created inserted,
) {
	entry := func(action, targetType string, id idx.ID, after any) {
		record(ctx, s.Audit, AuditEntry{
			Action:     action,
			TargetType: targetType,
			TargetID:   id.String(),
			TenantID:   inv.TenantID,
			ActorID:    account.ID,
			After:      after,
		})
	}

	if created.account {
		entry(domain.ActionAccountCreated, "account", account.ID, map[string]any{
			"email":       account.Email,
			"family_name": account.FamilyName,
			"given_name":  account.GivenName,
		})
	}
	if created.membership {
		entry(domain.ActionMembershipCreated, "membership", member.ID, map[string]any{
			"account_id": member.AccountID,
			"role":       member.Role,
		})
	}
	if created.employment {
		entry(domain.ActionEmploymentCreated, "employment", job.ID, map[string]any{
			"employee_no":     job.EmployeeNo,
			"employment_type": job.Type,
			"hire_date":       job.HireDate.Format(domain.DateLayout),
		})
	}
	entry(domain.ActionInvitationConsumed, "invitation", inv.ID, map[string]any{
		"used_by": account.ID,
	})
}
