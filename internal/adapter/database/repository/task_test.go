package repository_test

import (
	"context"
	"math"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"taskmanager/internal/adapter/database"
	"taskmanager/internal/adapter/database/repository"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	. "taskmanager/pkg/test"
	"taskmanager/pkg/test/factory"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	DB       *database.DB
	TaskRepo port.TaskRepository
	Alice    domain.User
	Bob      domain.User
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	s.DB = InitTestDB(s.T())
	s.TaskRepo = repository.NewTaskRepository(s.DB)

	users := repository.NewUserRepository(s.DB)
	ctx := context.Background()

	s.Alice, _ = users.Create(ctx, factory.NewUser[domain.User](map[string]any{"Email": "alice@example.com"}))
	s.Bob, _ = users.Create(ctx, factory.NewUser[domain.User](map[string]any{"Email": "bob@example.com"}))
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TaskRepositoryTestSuite))
}

func (s *TaskRepositoryTestSuite) create(task domain.Task) domain.Task {
	saved, err := s.TaskRepo.Create(context.Background(), task)
	s.Require().NoError(err)
	return saved
}

func (s *TaskRepositoryTestSuite) TestCreate() {
	task := s.create(factory.NewTask(s.Alice.ID, factory.WithTitle("Buy milk")))

	Expect(task.ID).To(BeNumerically(">", 0))
	Expect(task.Status).To(Equal(domain.TaskStatusPending))
	Expect(task.Description).To(BeNil())
	Expect(task.CreatedAt.Location()).To(Equal(time.UTC))
}

func (s *TaskRepositoryTestSuite) TestCreate_UnknownOwnerViolatesForeignKey() {
	_, err := s.TaskRepo.Create(context.Background(), factory.NewTask(424242))

	assert.Error(s.T(), err)
}

func (s *TaskRepositoryTestSuite) TestFindByIDForOwner() {
	task := s.create(factory.NewTask(s.Alice.ID, factory.WithDescription("2 liters")))

	found, err := s.TaskRepo.FindByIDForOwner(context.Background(), s.Alice.ID, task.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), task.Title, found.Title)
	assert.Equal(s.T(), "2 liters", *found.Description)
	assert.Equal(s.T(), s.Alice.ID, found.OwnerID)
}

func (s *TaskRepositoryTestSuite) TestFindByIDForOwner_OtherOwner() {
	task := s.create(factory.NewTask(s.Alice.ID))

	_, err := s.TaskRepo.FindByIDForOwner(context.Background(), s.Bob.ID, task.ID)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TaskRepositoryTestSuite) TestFindAllByOwner_OrderAndScope() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := s.create(factory.NewTask(s.Alice.ID, factory.WithCreatedAt(base)))
	second := s.create(factory.NewTask(s.Alice.ID, factory.WithCreatedAt(base.Add(time.Minute))))
	tied := s.create(factory.NewTask(s.Alice.ID, factory.WithCreatedAt(base.Add(time.Minute))))
	s.create(factory.NewTask(s.Bob.ID))

	tasks, total, err := s.TaskRepo.FindAllByOwner(context.Background(), s.Alice.ID, domain.PageWindow{Page: 1, Limit: 10})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 3, total)

	ids := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID}
	assert.Equal(s.T(), []int64{tied.ID, second.ID, first.ID}, ids)
}

func (s *TaskRepositoryTestSuite) TestFindAllByOwner_Window() {
	for range 25 {
		s.create(factory.NewTask(s.Alice.ID))
	}

	tasks, total, err := s.TaskRepo.FindAllByOwner(context.Background(), s.Alice.ID, domain.PageWindow{Page: 3, Limit: 10})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 25, total)
	assert.Len(s.T(), tasks, 5)
}

func (s *TaskRepositoryTestSuite) TestFindAllByOwner_WindowPastTheEnd() {
	for range 3 {
		s.create(factory.NewTask(s.Alice.ID))
	}

	tasks, total, err := s.TaskRepo.FindAllByOwner(context.Background(), s.Alice.ID, domain.PageWindow{Page: math.MaxInt, Limit: 100})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 3, total)
	assert.NotNil(s.T(), tasks)
	assert.Empty(s.T(), tasks)
}

func (s *TaskRepositoryTestSuite) TestFindAllByOwner_Empty() {
	tasks, total, err := s.TaskRepo.FindAllByOwner(context.Background(), s.Bob.ID, domain.PageWindow{Page: 1, Limit: 10})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 0, total)
	assert.NotNil(s.T(), tasks)
	assert.Empty(s.T(), tasks)
}

func (s *TaskRepositoryTestSuite) TestUpdateForOwner() {
	ctx := context.Background()
	task := s.create(factory.NewTask(s.Alice.ID))

	task.Status = domain.TaskStatusCompleted
	updated, err := s.TaskRepo.UpdateForOwner(ctx, s.Alice.ID, task)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), domain.TaskStatusCompleted, updated.Status)

	found, _ := s.TaskRepo.FindByIDForOwner(ctx, s.Alice.ID, task.ID)
	assert.Equal(s.T(), domain.TaskStatusCompleted, found.Status)
	assert.Equal(s.T(), task.Title, found.Title)
}

func (s *TaskRepositoryTestSuite) TestUpdateForOwner_OtherOwnerChangesNothing() {
	ctx := context.Background()
	task := s.create(factory.NewTask(s.Alice.ID, factory.WithTitle("original")))

	task.Title = "hijacked"
	_, err := s.TaskRepo.UpdateForOwner(ctx, s.Bob.ID, task)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	found, _ := s.TaskRepo.FindByIDForOwner(ctx, s.Alice.ID, task.ID)
	assert.Equal(s.T(), "original", found.Title)
	assert.Equal(s.T(), s.Alice.ID, found.OwnerID)
}

func (s *TaskRepositoryTestSuite) TestDeleteForOwner() {
	ctx := context.Background()
	task := s.create(factory.NewTask(s.Alice.ID))

	assert.ErrorIs(s.T(), s.TaskRepo.DeleteForOwner(ctx, s.Bob.ID, task.ID), domain.ErrNotFound)
	assert.NoError(s.T(), s.TaskRepo.DeleteForOwner(ctx, s.Alice.ID, task.ID))
	assert.ErrorIs(s.T(), s.TaskRepo.DeleteForOwner(ctx, s.Alice.ID, task.ID), domain.ErrNotFound)
}

func (s *TaskRepositoryTestSuite) TestDeletingUserCascadesToTasks() {
	ctx := context.Background()
	s.create(factory.NewTask(s.Alice.ID))

	_, err := s.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", s.Alice.ID)
	s.Require().NoError(err)

	var count int
	s.Require().NoError(s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count))
	assert.Equal(s.T(), 0, count)
}
