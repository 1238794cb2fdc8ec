package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type employmentsRepo struct{ db querier }

var _ store.Employments = (*employmentsRepo)(nil)

const employmentCols = `id, tenant_id, account_id, employee_no, employment_type, hire_date, termination_date, ` + stampCols

func scanEmployment(row scanner) (domain.Employment, error) {
	var (
		e                       domain.Employment
		id, tenantID, accountID string
		kind, hireDate          string
		termination             sql.NullString
		st                      stampRow
	)
	dest := append([]any{&id, &tenantID, &accountID, &e.EmployeeNo, &kind, &hireDate, &termination}, st.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.Employment{}, mapNotFound(err)
	}

	e.ID = idx.ID(id)
	e.TenantID = idx.ID(tenantID)
	e.AccountID = idx.ID(accountID)
	e.Type = domain.EmploymentType(kind)

	var err error
	if e.HireDate, err = time.Parse(domain.DateLayout, hireDate); err != nil {
		return domain.Employment{}, fmt.Errorf("sqlite: bad hire_date %q: %w", hireDate, err)
	}
	if e.TerminationDate, err = decodeDatePtr(termination); err != nil {
		return domain.Employment{}, err
	}
	if e.Stamp, err = st.stamp(); err != nil {
		return domain.Employment{}, err
	}
	return e, nil
}

func (r *employmentsRepo) GetEmploymentByEmployeeNo(ctx context.Context, tenantID idx.ID, employeeNo string) (domain.Employment, error) {
	return scanEmployment(r.db.QueryRowContext(ctx,
		`SELECT `+employmentCols+` FROM employments
		 WHERE tenant_id = ? AND employee_no = ? AND deleted_at IS NULL`,
		tenantID.String(), employeeNo))
}

func (r *employmentsRepo) CreateEmployment(ctx context.Context, e domain.Employment) error {
	kind := e.Type
	if kind == "" {
		kind = domain.EmploymentFulltime
	}
	args := append([]any{
		e.ID.String(), e.TenantID.String(), e.AccountID.String(), e.EmployeeNo, string(kind),
		encodeDate(e.HireDate), encodeDatePtr(e.TerminationDate),
	}, stampArgs(e.Stamp)...)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employments (`+employmentCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return mapInsertErr(err)
}
