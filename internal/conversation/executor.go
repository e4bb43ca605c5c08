package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/appointments"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/clients"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/companies"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// ExecutorConfig tunes executor behavior.
type ExecutorConfig struct {
	// AutoCreateMissingClient makes the scheduling flow register an unknown
	// client on the fly instead of refusing.
	AutoCreateMissingClient bool
	// DefaultAppointmentHour is used when a scheduling message carries no
	// time of day.
	DefaultAppointmentHour int
}

// Executor turns a classified intent plus its extracted fields into domain
// actions and a reply for the sender.
type Executor struct {
	companies    companies.Repository
	clients      clients.Repository
	appointments appointments.Repository
	cfg          ExecutorConfig
	logger       *logging.Logger
	now          func() time.Time
}

// NewExecutor wires an executor over the domain repositories.
func NewExecutor(
	companyRepo companies.Repository,
	clientRepo clients.Repository,
	apptRepo appointments.Repository,
	cfg ExecutorConfig,
	logger *logging.Logger,
) *Executor {
	if cfg.DefaultAppointmentHour <= 0 || cfg.DefaultAppointmentHour > 23 {
		cfg.DefaultAppointmentHour = 9
	}
	return &Executor{
		companies:    companyRepo,
		clients:      clientRepo,
		appointments: apptRepo,
		cfg:          cfg,
		logger:       logger.Named("executor"),
		now:          time.Now,
	}
}

// Execute runs the action for the intent and returns the outcome. It never
// returns an error; failures are folded into the Result so the caller always
// has a reply to send back.
func (e *Executor) Execute(ctx context.Context, companyID string, intent Intent, fields Fields) Result {
	res := Result{Intent: intent, Fields: fields}

	switch intent {
	case IntentRegisterClient:
		e.registerClient(ctx, companyID, fields, &res)
	case IntentScheduleAppointment:
		e.scheduleAppointment(ctx, companyID, fields, &res)
	case IntentConfirmAppointment:
		e.confirmAppointment(ctx, companyID, fields, &res)
	case IntentRegisterPayment:
		res.Reply = replyPaymentNotReady
	default:
		res.Reply = replyUnknown
	}

	return res
}

func (e *Executor) registerClient(ctx context.Context, companyID string, fields Fields, res *Result) {
	name := fields.String("name")
	if name == "" {
		res.Failure = FailureMissingInput
		res.Reply = replyMissingClientName
		return
	}
	phone := fields.String("phone")
	if phone == "" {
		res.Failure = FailureMissingInput
		res.Reply = replyMissingClientPhone
		return
	}

	company, ok := e.resolveCompany(ctx, companyID, res)
	if !ok {
		return
	}

	client, err := e.clients.Create(ctx, &clients.CreateClientRequest{
		CompanyID: company.ID,
		Name:      name,
		Phone:     phone,
	})
	if err != nil {
		e.fail(res, "create client", err)
		return
	}

	vehicleNote := ""
	if model := fields.String("vehicle"); model != "" {
		plate := fields.String("plate")
		if plate == "" {
			plate = PlateNotInformed
		}
		if _, err := e.clients.AddVehicle(ctx, &clients.CreateVehicleRequest{
			ClientID: client.ID,
			Model:    model,
			Plate:    plate,
		}); err != nil {
			e.fail(res, "add vehicle", err)
			return
		}
		vehicleNote = fmt.Sprintf(" com veiculo %s (%s)", model, plate)
	}

	res.Reply = fmt.Sprintf("Cliente %s cadastrado com sucesso%s! Telefone: %s.", client.Name, vehicleNote, client.Phone)
}

func (e *Executor) scheduleAppointment(ctx context.Context, companyID string, fields Fields, res *Result) {
	name := fields.String("name")
	if name == "" {
		res.Failure = FailureMissingInput
		res.Reply = replyMissingScheduleName
		return
	}

	company, ok := e.resolveCompany(ctx, companyID, res)
	if !ok {
		return
	}

	client, err := e.clients.FindLatestByNameContaining(ctx, company.ID, name)
	switch {
	case errors.Is(err, clients.ErrClientNotFound):
		if !e.cfg.AutoCreateMissingClient {
			res.Failure = FailureNotFound
			res.Reply = fmt.Sprintf("Nao encontrei o cliente %s. Cadastre o cliente antes de agendar.", name)
			return
		}
		client, err = e.clients.Create(ctx, &clients.CreateClientRequest{
			CompanyID: company.ID,
			Name:      name,
			Phone:     PhoneNotInformed,
		})
		if err != nil {
			e.fail(res, "auto-create client", err)
			return
		}
		e.logger.Info("auto-created client for scheduling", "client_id", client.ID, "name", client.Name)
	case err != nil:
		e.fail(res, "find client", err)
		return
	}

	at := e.resolveScheduleTime(fields)
	appt, err := e.appointments.Create(ctx, &appointments.CreateAppointmentRequest{
		CompanyID:   company.ID,
		ClientID:    client.ID,
		ScheduledAt: at,
	})
	if err != nil {
		e.fail(res, "create appointment", err)
		return
	}

	res.Reply = fmt.Sprintf("Agendamento criado para %s no dia %s as %s.",
		client.Name, appt.ScheduledAt.Format("02/01/2006"), appt.ScheduledAt.Format("15:04"))
}

func (e *Executor) confirmAppointment(ctx context.Context, companyID string, fields Fields, res *Result) {
	name := fields.String("name")
	if name == "" {
		res.Failure = FailureMissingInput
		res.Reply = replyMissingConfirmName
		return
	}

	company, ok := e.resolveCompany(ctx, companyID, res)
	if !ok {
		return
	}

	client, err := e.clients.FindLatestByNameContaining(ctx, company.ID, name)
	if errors.Is(err, clients.ErrClientNotFound) {
		res.Failure = FailureNotFound
		res.Reply = fmt.Sprintf("Nao encontrei o cliente %s.", name)
		return
	}
	if err != nil {
		e.fail(res, "find client", err)
		return
	}

	from, to := e.confirmWindow(fields.Bool("isHoje"))
	appt, err := e.appointments.FirstScheduledInWindow(ctx, company.ID, client.ID, from, to)
	if errors.Is(err, appointments.ErrAppointmentNotFound) {
		res.Failure = FailureNotFound
		res.Reply = fmt.Sprintf("Nao encontrei agendamento pendente para %s.", client.Name)
		return
	}
	if err != nil {
		e.fail(res, "find appointment", err)
		return
	}

	if err := appt.Confirm(); err != nil {
		e.fail(res, "confirm appointment", err)
		return
	}
	if err := e.appointments.Update(ctx, appt); err != nil {
		e.fail(res, "update appointment", err)
		return
	}

	res.Reply = fmt.Sprintf("Agendamento de %s no dia %s as %s confirmado!",
		client.Name, appt.ScheduledAt.Format("02/01/2006"), appt.ScheduledAt.Format("15:04"))
}

// resolveScheduleTime picks the appointment moment: an explicit date wins,
// then "amanha", then today. The time of day comes from the message or falls
// back to the configured default hour.
func (e *Executor) resolveScheduleTime(fields Fields) time.Time {
	now := e.now().UTC()

	hour := e.cfg.DefaultAppointmentHour
	minute := 0
	if h, ok := fields.Int("hora"); ok {
		hour = h
		minute, _ = fields.Int("minutos")
	}

	day := now
	if d, ok := fields["date"].(Date); ok {
		year := d.Year
		if year == 0 {
			year = now.Year()
		}
		return time.Date(year, time.Month(d.Month), d.Day, hour, minute, 0, 0, time.UTC)
	}
	if fields.Bool("isAmanha") {
		day = now.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

// confirmWindow bounds the lookup for the appointment being confirmed.
// "hoje" restricts to the current day; otherwise anything from now on.
func (e *Executor) confirmWindow(isHoje bool) (*time.Time, *time.Time) {
	now := e.now().UTC()
	if isHoje {
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		return &start, &end
	}
	return &now, nil
}

// resolveCompany maps the inbound tenant id to a company, falling back to the
// oldest registered company when the id is absent or unknown.
func (e *Executor) resolveCompany(ctx context.Context, companyID string, res *Result) (*companies.Company, bool) {
	if companyID != "" {
		company, err := e.companies.GetByID(ctx, companyID)
		if err == nil {
			return company, true
		}
		if !errors.Is(err, companies.ErrCompanyNotFound) {
			e.fail(res, "load company", err)
			return nil, false
		}
		e.logger.Warn("unknown company id on inbound message, falling back to first company", "company_id", companyID)
	} else {
		e.logger.Warn("inbound message without company id, falling back to first company")
	}

	company, err := e.companies.First(ctx)
	if err != nil {
		e.fail(res, "load fallback company", err)
		return nil, false
	}
	return company, true
}

func (e *Executor) fail(res *Result, op string, err error) {
	e.logger.Error("executor failure", "op", op, "error", err)
	res.Failure = FailurePersistence
	res.Reply = replyInternalError
}
