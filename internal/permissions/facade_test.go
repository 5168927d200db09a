package permissions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/mocks"
	"github.com/Corvia/tenant-users/internal/schema"
)

type stubEngine struct {
	current string
}

func (e *stubEngine) CurrentSchema() string                            { return e.current }
func (e *stubEngine) UseSchema(name string) error                      { e.current = name; return nil }
func (e *stubEngine) CreateSchema(ctx context.Context, n string) error { return nil }
func (e *stubEngine) DropSchema(ctx context.Context, n string) error   { return nil }

type FacadeTestSuite struct {
	suite.Suite
	engine   *stubEngine
	sc       *schema.Context
	mockRepo *mocks.PermissionsRepository
	user     *domain.UserProfile
	facade   *Facade
}

func (s *FacadeTestSuite) SetupTest() {
	s.engine = &stubEngine{current: "acme_1"}
	s.sc = schema.NewContext(s.engine)
	s.mockRepo = new(mocks.PermissionsRepository)
	s.user = &domain.UserProfile{ID: "user-1", Email: "user@example.test", IsActive: true}
	s.facade = NewFacade(s.sc, s.mockRepo, s.user)
}

func TestFacade(t *testing.T) {
	suite.Run(t, new(FacadeTestSuite))
}

func (s *FacadeTestSuite) TestIsStaffCachesPerSchema() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1", IsStaff: true}, nil).Once()

	staff, err := s.facade.IsStaff(context.Background())
	s.NoError(err)
	s.True(staff)

	// Second read under the same schema is served from the cache.
	staff, err = s.facade.IsStaff(context.Background())
	s.NoError(err)
	s.True(staff)

	// A different schema is a different authorization record.
	s.engine.current = "other_2"
	s.mockRepo.On("Get", mock.Anything, "user-1").Return(nil, nil).Once()

	staff, err = s.facade.IsStaff(context.Background())
	s.NoError(err)
	s.False(staff)

	s.mockRepo.AssertExpectations(s.T())
}

func (s *FacadeTestSuite) TestIsSuperuserWithoutRecord() {
	s.mockRepo.On("Get", mock.Anything, "user-1").Return(nil, nil).Once()

	super, err := s.facade.IsSuperuser(context.Background())
	s.NoError(err)
	s.False(super)
}

func (s *FacadeTestSuite) TestHasTenantPermissions() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1"}, nil).Once()

	ok, err := s.facade.HasTenantPermissions(context.Background())
	s.NoError(err)
	s.True(ok)

	s.mockRepo.On("Get", mock.Anything, "user-1").Return(nil, nil).Once()
	ok, err = s.facade.HasTenantPermissions(context.Background())
	s.NoError(err)
	s.False(ok)
}

func (s *FacadeTestSuite) TestGetAllPermissionsSuperuser() {
	everything := []string{"app.add_thing", "app.delete_thing", "other.view_item"}
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1", IsSuperuser: true}, nil)
	s.mockRepo.On("AllPermissions", mock.Anything).Return(everything, nil)

	all, err := s.facade.GetAllPermissions(context.Background())
	s.NoError(err)
	s.Equal(everything, all)
}

func (s *FacadeTestSuite) TestGetAllPermissionsRegularMember() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1"}, nil)
	s.mockRepo.On("GroupPermissions", mock.Anything, "user-1").
		Return([]string{"app.view_thing"}, nil)

	all, err := s.facade.GetAllPermissions(context.Background())
	s.NoError(err)
	s.Equal([]string{"app.view_thing"}, all)
}

func (s *FacadeTestSuite) TestGetAllPermissionsNonMember() {
	s.mockRepo.On("Get", mock.Anything, "user-1").Return(nil, nil)

	all, err := s.facade.GetAllPermissions(context.Background())
	s.NoError(err)
	s.Empty(all)
}

func (s *FacadeTestSuite) TestHasPerm() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1"}, nil)
	s.mockRepo.On("GroupPermissions", mock.Anything, "user-1").
		Return([]string{"app.view_thing", "app.change_thing"}, nil)

	ok, err := s.facade.HasPerm(context.Background(), "app.change_thing")
	s.NoError(err)
	s.True(ok)

	ok, err = s.facade.HasPerm(context.Background(), "app.delete_thing")
	s.NoError(err)
	s.False(ok)
}

func (s *FacadeTestSuite) TestHasPerms() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1"}, nil)
	s.mockRepo.On("GroupPermissions", mock.Anything, "user-1").
		Return([]string{"app.view_thing", "app.change_thing"}, nil)

	ok, err := s.facade.HasPerms(context.Background(), []string{"app.view_thing", "app.change_thing"})
	s.NoError(err)
	s.True(ok)

	ok, err = s.facade.HasPerms(context.Background(), []string{"app.view_thing", "app.delete_thing"})
	s.NoError(err)
	s.False(ok)
}

func (s *FacadeTestSuite) TestHasModulePerms() {
	s.mockRepo.On("Get", mock.Anything, "user-1").
		Return(&domain.UserTenantPermissions{ProfileID: "user-1"}, nil)
	s.mockRepo.On("GroupPermissions", mock.Anything, "user-1").
		Return([]string{"app.view_thing"}, nil)

	ok, err := s.facade.HasModulePerms(context.Background(), "app")
	s.NoError(err)
	s.True(ok)

	ok, err = s.facade.HasModulePerms(context.Background(), "billing")
	s.NoError(err)
	s.False(ok)
}
