package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/appointments"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/clients"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/companies"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

type executorFixture struct {
	executor     *Executor
	companies    companies.Repository
	clients      clients.Repository
	appointments appointments.Repository
	company      *companies.Company
}

func newExecutorFixture(t *testing.T, cfg ExecutorConfig) *executorFixture {
	t.Helper()

	companyRepo := companies.NewInMemoryRepository()
	clientRepo := clients.NewInMemoryRepository()
	apptRepo := appointments.NewInMemoryRepository()

	company, err := companyRepo.Create(context.Background(), &companies.CreateCompanyRequest{Name: "Lava Master"})
	require.NoError(t, err)

	exec := NewExecutor(companyRepo, clientRepo, apptRepo, cfg, logging.New("error"))
	exec.now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}

	return &executorFixture{
		executor:     exec,
		companies:    companyRepo,
		clients:      clientRepo,
		appointments: apptRepo,
		company:      company,
	}
}

func (f *executorFixture) process(text string) Result {
	norm := NormalizeText(text)
	intent := ClassifyIntent(norm)
	fields := ExtractFields(intent, norm)
	return f.executor.Execute(context.Background(), f.company.ID, intent, fields)
}

func TestExecuteRegisterClient(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("Cadastrar cliente Joao telefone 11999998888")

	assert.Equal(t, IntentRegisterClient, res.Intent)
	assert.Equal(t, FailureNone, res.Failure)
	assert.Contains(t, res.Reply, "joao")

	client, err := f.clients.FindLatestByNameContaining(context.Background(), f.company.ID, "joao")
	require.NoError(t, err)
	assert.Equal(t, "11999998888", client.Phone)
}

func TestExecuteRegisterClientWithVehicle(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("Cadastrar cliente Maria telefone 11988887777 carro Gol placa ABC1234")
	assert.Equal(t, FailureNone, res.Failure)

	client, err := f.clients.FindLatestByNameContaining(context.Background(), f.company.ID, "maria")
	require.NoError(t, err)
	vehicles, err := f.clients.ListVehicles(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "gol", vehicles[0].Model)
	assert.Equal(t, "ABC1234", vehicles[0].Plate)
}

func TestExecuteRegisterClientVehicleWithoutPlate(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("cadastrar cliente Ana telefone 11977776666 carro Onix")
	assert.Equal(t, FailureNone, res.Failure)

	client, err := f.clients.FindLatestByNameContaining(context.Background(), f.company.ID, "ana")
	require.NoError(t, err)
	vehicles, err := f.clients.ListVehicles(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, PlateNotInformed, vehicles[0].Plate)
}

func TestExecuteRegisterClientMissingFields(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("cadastrar telefone 11999998888")
	assert.Equal(t, FailureMissingInput, res.Failure)
	assert.Equal(t, replyMissingClientName, res.Reply)

	res = f.process("cadastrar cliente joao")
	assert.Equal(t, FailureMissingInput, res.Failure)
	assert.Equal(t, replyMissingClientPhone, res.Reply)
}

func TestExecuteScheduleTomorrowWithTime(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: true})

	res := f.process("Agendar Maria amanhã às 14h")
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	client, err := f.clients.FindLatestByNameContaining(context.Background(), f.company.ID, "maria")
	require.NoError(t, err)
	assert.Equal(t, PhoneNotInformed, client.Phone)

	appts, err := f.appointments.ListByCompany(context.Background(), f.company.ID, appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), appts[0].ScheduledAt)
	assert.Equal(t, appointments.StatusScheduled, appts[0].Status)
}

func TestExecuteScheduleExplicitDateWinsOverTomorrow(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: true})

	res := f.process("agendar joao amanha dia 14/05 as 15:30")
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	appts, err := f.appointments.ListByCompany(context.Background(), f.company.ID, appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, time.Date(2026, 5, 14, 15, 30, 0, 0, time.UTC), appts[0].ScheduledAt)
}

func TestExecuteScheduleDefaultsToTodayAtDefaultHour(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: true})

	res := f.process("agendar pedro")
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	appts, err := f.appointments.ListByCompany(context.Background(), f.company.ID, appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), appts[0].ScheduledAt)
}

func TestExecuteScheduleExistingClientNotDuplicated(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: true})

	existing, err := f.clients.Create(context.Background(), &clients.CreateClientRequest{
		CompanyID: f.company.ID,
		Name:      "maria silva",
		Phone:     "11999998888",
	})
	require.NoError(t, err)

	res := f.process("agendar maria hoje as 16h")
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	appts, err := f.appointments.ListByCompany(context.Background(), f.company.ID, appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, existing.ID, appts[0].ClientID)

	all, err := f.clients.ListByCompany(context.Background(), f.company.ID, clients.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExecuteScheduleUnknownClientWithoutAutoCreate(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: false})

	res := f.process("agendar carla amanha")
	assert.Equal(t, FailureNotFound, res.Failure)

	all, err := f.clients.ListByCompany(context.Background(), f.company.ID, clients.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecuteConfirmToday(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{AutoCreateMissingClient: true})

	client, err := f.clients.Create(context.Background(), &clients.CreateClientRequest{
		CompanyID: f.company.ID,
		Name:      "joao",
		Phone:     "11999998888",
	})
	require.NoError(t, err)

	// One appointment today, one tomorrow. "hoje" must confirm only today's.
	today, err := f.appointments.Create(context.Background(), &appointments.CreateAppointmentRequest{
		CompanyID:   f.company.ID,
		ClientID:    client.ID,
		ScheduledAt: time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	tomorrow, err := f.appointments.Create(context.Background(), &appointments.CreateAppointmentRequest{
		CompanyID:   f.company.ID,
		ClientID:    client.ID,
		ScheduledAt: time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	res := f.process("confirmar joao hoje")
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	got, err := f.appointments.GetByID(context.Background(), f.company.ID, today.ID)
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusConfirmed, got.Status)

	got, err = f.appointments.GetByID(context.Background(), f.company.ID, tomorrow.ID)
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusScheduled, got.Status)
}

func TestExecuteConfirmWithoutPendingAppointment(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	_, err := f.clients.Create(context.Background(), &clients.CreateClientRequest{
		CompanyID: f.company.ID,
		Name:      "joao",
		Phone:     "11999998888",
	})
	require.NoError(t, err)

	res := f.process("confirmar joao")
	assert.Equal(t, FailureNotFound, res.Failure)
	assert.Contains(t, res.Reply, "Nao encontrei agendamento")
}

func TestExecuteConfirmUnknownClient(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("confirmar fulano hoje")
	assert.Equal(t, FailureNotFound, res.Failure)
	assert.Contains(t, res.Reply, "Nao encontrei o cliente")
}

func TestExecutePaymentStub(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("pagamento do joao")
	assert.Equal(t, IntentRegisterPayment, res.Intent)
	assert.Equal(t, FailureNone, res.Failure)
	assert.Equal(t, replyPaymentNotReady, res.Reply)
}

func TestExecuteUnknownIntent(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	res := f.process("bom dia tudo bem")
	assert.Equal(t, IntentUnknown, res.Intent)
	assert.Equal(t, replyUnknown, res.Reply)
}

func TestExecuteFallsBackToFirstCompany(t *testing.T) {
	f := newExecutorFixture(t, ExecutorConfig{})

	norm := NormalizeText("cadastrar cliente rita telefone 11966665555")
	res := f.executor.Execute(context.Background(), "", IntentRegisterClient, ExtractFields(IntentRegisterClient, norm))
	require.Equal(t, FailureNone, res.Failure, res.Reply)

	client, err := f.clients.FindLatestByNameContaining(context.Background(), f.company.ID, "rita")
	require.NoError(t, err)
	assert.Equal(t, f.company.ID, client.CompanyID)
}

func TestExecuteNoCompaniesRegistered(t *testing.T) {
	companyRepo := companies.NewInMemoryRepository()
	exec := NewExecutor(companyRepo, clients.NewInMemoryRepository(), appointments.NewInMemoryRepository(), ExecutorConfig{}, logging.New("error"))

	norm := NormalizeText("cadastrar cliente rita telefone 11966665555")
	res := exec.Execute(context.Background(), "", IntentRegisterClient, ExtractFields(IntentRegisterClient, norm))
	assert.Equal(t, FailurePersistence, res.Failure)
	assert.Equal(t, replyInternalError, res.Reply)
}
