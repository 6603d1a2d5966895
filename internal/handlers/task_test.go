package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/constants"
	"github.com/mohammad-ariqat/taskManager/internal/database"
	"github.com/mohammad-ariqat/taskManager/internal/middleware"
	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/repository"
	"github.com/mohammad-ariqat/taskManager/internal/services"
	"github.com/mohammad-ariqat/taskManager/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	// Ownership middleware reads the shared handle
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	categoryRepo := repository.NewCategoryRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, categoryRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// routerFor builds the task routes with a stub auth middleware acting as the
// given user, so the ownership middleware runs exactly as in production.
func (suite *TaskHandlerTestSuite) routerFor(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})

	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", suite.handler.ListTasks)
		tasks.POST("", suite.handler.CreateTask)
		tasks.GET("/:id", middleware.RequireTaskOwnership(), suite.handler.GetTask)
		tasks.PATCH("/:id", middleware.RequireTaskOwnership(), suite.handler.UpdateTask)
		tasks.PATCH("/:id/status", middleware.RequireTaskOwnership(), suite.handler.UpdateTaskStatus)
		tasks.DELETE("/:id", middleware.RequireTaskOwnership(), suite.handler.DeleteTask)
	}

	return r
}

func (suite *TaskHandlerTestSuite) request(r *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Helpers to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) createTestCategory(name string, userID uint64) *models.Category {
	category := &models.Category{
		Name:   name,
		Color:  "#3b82f6",
		UserID: userID,
	}
	suite.Require().NoError(suite.db.Create(category).Error)
	return category
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, userID uint64, mutate ...func(*models.Task)) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Priority:    models.TaskPriorityMedium,
		Status:      models.TaskStatusPending,
		UserID:      userID,
	}
	for _, m := range mutate {
		m(task)
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

type taskResponse struct {
	ID         uint64  `json:"id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	DueDate    *string `json:"due_date"`
	CategoryID *uint64 `json:"category_id"`
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

func (suite *TaskHandlerTestSuite) TestListTasks_OrderedByDueDateWithNullsLast() {
	user := suite.createTestUser("list@example.com")

	later := utils.StartOfDay(time.Now()).AddDate(0, 0, 7)
	sooner := utils.StartOfDay(time.Now()).AddDate(0, 0, 1)
	suite.createTestTask("No deadline", user.ID)
	suite.createTestTask("Later", user.ID, func(t *models.Task) { t.DueDate = &later })
	suite.createTestTask("Sooner", user.ID, func(t *models.Task) { t.DueDate = &sooner })

	w := suite.request(suite.routerFor(user.ID), http.MethodGet, "/api/tasks", nil)
	suite.Equal(http.StatusOK, w.Code)

	var response taskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 3)
	suite.Equal("Sooner", response.Tasks[0].Title)
	suite.Equal("Later", response.Tasks[1].Title)
	suite.Equal("No deadline", response.Tasks[2].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_ScopedToOwner() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	suite.createTestTask("Alice task", alice.ID)
	suite.createTestTask("Bob task", bob.ID)

	w := suite.request(suite.routerFor(alice.ID), http.MethodGet, "/api/tasks", nil)
	suite.Equal(http.StatusOK, w.Code)

	var response taskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("Alice task", response.Tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_FacetFiltering() {
	user := suite.createTestUser("facets@example.com")
	work := suite.createTestCategory("Work", user.ID)

	suite.createTestTask("Pending high work", user.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityHigh
		t.CategoryID = &work.ID
	})
	suite.createTestTask("Pending low uncategorized", user.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityLow
	})
	suite.createTestTask("Done high work", user.ID, func(t *models.Task) {
		t.Status = models.TaskStatusCompleted
		t.Priority = models.TaskPriorityHigh
		t.CategoryID = &work.ID
	})

	r := suite.routerFor(user.ID)

	w := suite.request(r, http.MethodGet, "/api/tasks?status=pending&priority=high", nil)
	suite.Equal(http.StatusOK, w.Code)
	var response taskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("Pending high work", response.Tasks[0].Title)

	// A concrete category facet never matches uncategorized tasks
	w = suite.request(r, http.MethodGet, "/api/tasks?category=1", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Tasks, 2)

	// "all" facets return everything
	w = suite.request(r, http.MethodGet, "/api/tasks?status=all&priority=all&category=all", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Tasks, 3)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("create@example.com")
	category := suite.createTestCategory("Home", user.ID)

	w := suite.request(suite.routerFor(user.ID), http.MethodPost, "/api/tasks", gin.H{
		"title":       "Buy groceries",
		"description": "milk, eggs",
		"priority":    "medium",
		"due_date":    "2026-09-01",
		"category_id": category.ID,
	})
	suite.Equal(http.StatusCreated, w.Code)

	var response taskResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Buy groceries", response.Title)
	suite.Equal("pending", response.Status, "status always starts at pending")
	suite.Equal("medium", response.Priority)
	suite.Require().NotNil(response.DueDate)
	suite.Equal("2026-09-01", *response.DueDate)
	suite.Require().NotNil(response.CategoryID)
	suite.Equal(category.ID, *response.CategoryID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_PriorityRequired() {
	user := suite.createTestUser("nopriority@example.com")

	w := suite.request(suite.routerFor(user.ID), http.MethodPost, "/api/tasks", gin.H{
		"title": "Missing priority",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	details := response["details"].(map[string]any)
	suite.Contains(details, "priority")

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count, "validation failure must not write")
}

func (suite *TaskHandlerTestSuite) TestCreateTask_PriorityOutsideEnumRejected() {
	user := suite.createTestUser("urgent@example.com")

	w := suite.request(suite.routerFor(user.ID), http.MethodPost, "/api/tasks", gin.H{
		"title":    "Too spicy",
		"priority": "urgent",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_ForeignCategoryRejected() {
	alice := suite.createTestUser("alice2@example.com")
	bob := suite.createTestUser("bob2@example.com")
	bobCategory := suite.createTestCategory("Bob's", bob.ID)

	w := suite.request(suite.routerFor(alice.ID), http.MethodPost, "/api/tasks", gin.H{
		"title":       "Sneaky",
		"priority":    "low",
		"category_id": bobCategory.ID,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// A missing category answers identically
	w = suite.request(suite.routerFor(alice.ID), http.MethodPost, "/api/tasks", gin.H{
		"title":       "Dangling",
		"priority":    "low",
		"category_id": 9999,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_PartialLeavesOtherFieldsAlone() {
	user := suite.createTestUser("update@example.com")
	due := utils.StartOfDay(time.Now()).AddDate(0, 0, 3)
	task := suite.createTestTask("Original", user.ID, func(t *models.Task) {
		t.Description = "keep me"
		t.DueDate = &due
	})

	w := suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1", gin.H{
		"title": "Renamed",
	})
	suite.Equal(http.StatusOK, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal("Renamed", reloaded.Title)
	suite.Equal("keep me", reloaded.Description)
	suite.NotNil(reloaded.DueDate)
	suite.Equal(models.TaskStatusPending, reloaded.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullsClearFields() {
	user := suite.createTestUser("clear@example.com")
	category := suite.createTestCategory("Clearable", user.ID)
	due := utils.StartOfDay(time.Now()).AddDate(0, 0, 3)
	task := suite.createTestTask("Clear me", user.ID, func(t *models.Task) {
		t.DueDate = &due
		t.CategoryID = &category.ID
	})

	w := suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1", map[string]any{
		"due_date":    nil,
		"category_id": nil,
	})
	suite.Equal(http.StatusOK, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Nil(reloaded.DueDate)
	suite.Nil(reloaded.CategoryID)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_TitleLengthCountedInRunes() {
	user := suite.createTestUser("runes@example.com")
	task := suite.createTestTask("Plain", user.ID)

	// 200 runes but 600 bytes; must pass the same 255-rune bound the
	// create path enforces.
	multibyte := strings.Repeat("あ", 200)
	w := suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1", gin.H{
		"title": multibyte,
	})
	suite.Equal(http.StatusOK, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal(multibyte, reloaded.Title)

	w = suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1", gin.H{
		"title": strings.Repeat("あ", 256),
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidStatusRejected() {
	user := suite.createTestUser("badstatus@example.com")
	suite.createTestTask("Stubborn", user.ID)

	w := suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1", gin.H{
		"status": "archived",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, 1).Error)
	suite.Equal(models.TaskStatusPending, reloaded.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_OwnerMismatchForbiddenAndUnmodified() {
	alice := suite.createTestUser("alice3@example.com")
	bob := suite.createTestUser("bob3@example.com")
	task := suite.createTestTask("Alice's task", alice.ID)

	w := suite.request(suite.routerFor(bob.ID), http.MethodPatch, "/api/tasks/1", gin.H{
		"title": "Hijacked",
	})
	suite.Equal(http.StatusForbidden, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal("Alice's task", reloaded.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_QuickUpdateTouchesOnlyStatus() {
	user := suite.createTestUser("quick@example.com")
	task := suite.createTestTask("Quick", user.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityHigh
	})

	w := suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1/status", gin.H{
		"status": "completed",
	})
	suite.Equal(http.StatusOK, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal(models.TaskStatusCompleted, reloaded.Status)
	suite.Equal("Quick", reloaded.Title)
	suite.Equal(models.TaskPriorityHigh, reloaded.Priority)

	// completed may revert; no transition is forbidden
	w = suite.request(suite.routerFor(user.ID), http.MethodPatch, "/api/tasks/1/status", gin.H{
		"status": "pending",
	})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFoundDistinctFromForbidden() {
	user := suite.createTestUser("distinct@example.com")

	w := suite.request(suite.routerFor(user.ID), http.MethodGet, "/api/tasks/42", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("delete@example.com")
	task := suite.createTestTask("Doomed", user.ID)

	w := suite.request(suite.routerFor(user.ID), http.MethodDelete, "/api/tasks/1", nil)
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_OwnerMismatchForbidden() {
	alice := suite.createTestUser("alice4@example.com")
	bob := suite.createTestUser("bob4@example.com")
	suite.createTestTask("Protected", alice.ID)

	w := suite.request(suite.routerFor(bob.ID), http.MethodDelete, "/api/tasks/1", nil)
	suite.Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(1), count)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
