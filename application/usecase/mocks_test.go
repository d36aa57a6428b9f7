package usecase

import (
	"context"
	"time"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/logger"
)

func testLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.Config{Silent: true})
}

// Mock implementations

type mockUserRepository struct {
	users   map[int64]*entity.User
	nextEmp int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*entity.User), nextEmp: 1}
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmpNumber(ctx context.Context, empNumber int64) (*entity.User, error) {
	if user, exists := m.users[empNumber]; exists {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	for _, user := range m.users {
		if user.RefreshToken != nil && *user.RefreshToken == token {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, outbound.ErrDuplicateEmail
		}
	}
	user.EmpNumber = m.nextEmp
	m.nextEmp++
	m.users[user.EmpNumber] = user
	return user, nil
}

func (m *mockUserRepository) Update(ctx context.Context, empNumber int64, update outbound.UserUpdate) (*entity.User, error) {
	user, exists := m.users[empNumber]
	if !exists {
		return nil, outbound.ErrUserNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	if update.EmpRole != nil {
		user.EmpRole = *update.EmpRole
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}
	return user, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, empNumber int64) error {
	if _, exists := m.users[empNumber]; !exists {
		return outbound.ErrUserNotFound
	}
	delete(m.users, empNumber)
	return nil
}

func (m *mockUserRepository) SetRefreshToken(ctx context.Context, empNumber int64, token string) error {
	user, exists := m.users[empNumber]
	if !exists {
		return outbound.ErrUserNotFound
	}
	user.RefreshToken = &token
	return nil
}

func (m *mockUserRepository) ClearRefreshToken(ctx context.Context, empNumber int64) error {
	user, exists := m.users[empNumber]
	if !exists {
		return outbound.ErrUserNotFound
	}
	user.RefreshToken = nil
	return nil
}

// mockRateLimitService lets tests flip the allow/block switches directly.
type mockRateLimitService struct {
	blocked    bool
	overLimit  bool
	checkErr   error
	increments int
	blocks     int
}

func (m *mockRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if m.checkErr != nil {
		return false, m.checkErr
	}
	return !m.overLimit, nil
}

func (m *mockRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	m.increments++
	return nil
}

func (m *mockRateLimitService) Block(ctx context.Context, key string, duration time.Duration) error {
	m.blocks++
	m.blocked = true
	return nil
}

func (m *mockRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return m.blocked, nil
}

type mockProjectRepository struct {
	projects map[int64]*entity.Project
	nextID   int64
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{projects: make(map[int64]*entity.Project), nextID: 1}
}

func (m *mockProjectRepository) Create(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	for _, existing := range m.projects {
		if existing.Name == project.Name {
			return nil, outbound.ErrDuplicateProject
		}
	}
	project.ID = m.nextID
	m.nextID++
	m.projects[project.ID] = project
	return project, nil
}

func (m *mockProjectRepository) FindAll(ctx context.Context) ([]*entity.Project, error) {
	var projects []*entity.Project
	for _, project := range m.projects {
		projects = append(projects, project)
	}
	return projects, nil
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	if project, exists := m.projects[id]; exists {
		return project, nil
	}
	return nil, outbound.ErrProjectNotFound
}

func (m *mockProjectRepository) Update(ctx context.Context, id int64, update outbound.ProjectUpdate) (*entity.Project, error) {
	project, exists := m.projects[id]
	if !exists {
		return nil, outbound.ErrProjectNotFound
	}
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Deadline != nil {
		project.Deadline = *update.Deadline
	}
	if update.Status != nil {
		project.Status = *update.Status
	}
	return project, nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.projects[id]; !exists {
		return outbound.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

type mockTaskRepository struct {
	tasks  map[int64]*entity.Task
	nextID int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[int64]*entity.Task), nextID: 1}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	for _, existing := range m.tasks {
		if existing.Title == task.Title {
			return nil, outbound.ErrDuplicateTask
		}
	}
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = task
	return task, nil
}

func (m *mockTaskRepository) FindByCreator(ctx context.Context, empNumber int64) ([]*entity.Task, error) {
	var tasks []*entity.Task
	for _, task := range m.tasks {
		if task.CreatedBy == empNumber {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	if task, exists := m.tasks[id]; exists {
		return task, nil
	}
	return nil, outbound.ErrTaskNotFound
}

func (m *mockTaskRepository) Update(ctx context.Context, id int64, update outbound.TaskUpdate) (*entity.Task, error) {
	task, exists := m.tasks[id]
	if !exists {
		return nil, outbound.ErrTaskNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Important != nil {
		task.Important = *update.Important
	}
	return task, nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.tasks[id]; !exists {
		return outbound.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

type mockTicketRepository struct {
	tickets map[int64]*entity.Ticket
	nextID  int64
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: make(map[int64]*entity.Ticket), nextID: 1}
}

func (m *mockTicketRepository) Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	for _, existing := range m.tickets {
		if existing.Title == ticket.Title {
			return nil, outbound.ErrDuplicateTicket
		}
	}
	ticket.ID = m.nextID
	m.nextID++
	m.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (m *mockTicketRepository) FindAll(ctx context.Context) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for _, ticket := range m.tickets {
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (m *mockTicketRepository) FindByAssignee(ctx context.Context, empNumber int64) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for _, ticket := range m.tickets {
		if ticket.AssignedTo == empNumber {
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	if ticket, exists := m.tickets[id]; exists {
		return ticket, nil
	}
	return nil, outbound.ErrTicketNotFound
}

func (m *mockTicketRepository) Update(ctx context.Context, id int64, update outbound.TicketUpdate) (*entity.Ticket, error) {
	ticket, exists := m.tickets[id]
	if !exists {
		return nil, outbound.ErrTicketNotFound
	}
	if update.Title != nil {
		ticket.Title = *update.Title
	}
	if update.Description != nil {
		ticket.Description = *update.Description
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	if update.ProjectID != nil {
		ticket.ProjectID = *update.ProjectID
	}
	if update.AssignedTo != nil {
		ticket.AssignedTo = *update.AssignedTo
	}
	return ticket, nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.tickets[id]; !exists {
		return outbound.ErrTicketNotFound
	}
	delete(m.tickets, id)
	return nil
}
