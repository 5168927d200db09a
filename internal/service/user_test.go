package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/mocks"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/pkg/logger"
	"github.com/Corvia/tenant-users/pkg/password"
)

type UserServiceTestSuite struct {
	suite.Suite
	engine        *fakeEngine
	sc            *schema.Context
	mockRepo      *mocks.Repository
	mockProfile   *mocks.UserProfileRepository
	mockTenant    *mocks.TenantRepository
	mockDomain    *mocks.DomainRepository
	mockPerms     *mocks.PermissionsRepository
	mockPublisher *mocks.EventPublisher
	service       *UserService

	publicTenant *domain.Tenant
}

func (s *UserServiceTestSuite) SetupTest() {
	s.engine = newFakeEngine()
	s.sc = schema.NewContext(s.engine)
	s.mockRepo = new(mocks.Repository)
	s.mockProfile = new(mocks.UserProfileRepository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockDomain = new(mocks.DomainRepository)
	s.mockPerms = new(mocks.PermissionsRepository)
	s.mockPublisher = new(mocks.EventPublisher)

	s.mockRepo.On("Profile").Return(s.mockProfile)
	s.mockRepo.On("Tenant").Return(s.mockTenant)
	s.mockRepo.On("Domain").Return(s.mockDomain)
	s.mockRepo.On("Permissions").Return(s.mockPerms)
	s.mockRepo.On("Transaction", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, fn func(repository.Repository) error) error {
			return fn(s.mockRepo)
		})

	cfg := &config.Config{PublicSchemaName: "public"}
	log := logger.NewLogger("test")
	tenants := NewTenantService(s.mockRepo, s.sc, s.mockPublisher, cfg, log)
	s.service = NewUserService(s.mockRepo, s.sc, tenants, s.mockPublisher, cfg, log)

	s.publicTenant = &domain.Tenant{ID: "pub", SchemaName: "public", Slug: "public", OwnerID: "pub-owner"}
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) expectPublicLink(profileID string) {
	s.mockTenant.On("GetBySchemaName", mock.Anything, "public").Return(s.publicTenant, nil).Once()
	s.mockProfile.On("HasMembership", mock.Anything, profileID, "pub").Return(false, nil).Once()
	s.mockPerms.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.UserTenantPermissions) bool {
		return p.ProfileID == profileID && !p.IsStaff && !p.IsSuperuser
	})).Return(nil).Once()
	s.mockProfile.On("AddMembership", mock.Anything, profileID, "pub").Return(nil).Once()
}

func (s *UserServiceTestSuite) TestCreateUser() {
	s.mockProfile.On("GetByEmail", mock.Anything, "new@example.test").Return(nil, nil).Once()
	s.mockProfile.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		p.ID = "u1"
		return p.Email == "new@example.test" && p.IsActive && password.IsUsable(p.Password)
	})).Return(nil).Once()
	s.expectPublicLink("u1")
	// The public-tenant link publishes its own membership event before the
	// identity-level one.
	s.mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.TenantUserEvent) bool {
		return e.Type == domain.EventUserAdded && e.TenantSchema == "public"
	})).Return(nil).Once()
	s.mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.TenantUserEvent) bool {
		return e.Type == domain.EventUserCreated && e.UserEmail == "new@example.test"
	})).Return(nil).Once()

	profile, err := s.service.CreateUser(context.Background(), CreateUserInput{
		Email:    "new@Example.test",
		Password: "s3cret",
	})

	s.NoError(err)
	s.Equal("new@example.test", profile.Email)
	s.True(password.Verify(profile.Password, "s3cret"))
	s.mockProfile.AssertExpectations(s.T())
	s.mockPublisher.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUserWithoutPassword() {
	s.mockProfile.On("GetByEmail", mock.Anything, "new@example.test").Return(nil, nil).Once()
	s.mockProfile.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		p.ID = "u1"
		return true
	})).Return(nil).Once()
	s.expectPublicLink("u1")
	s.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	profile, err := s.service.CreateUser(context.Background(), CreateUserInput{Email: "new@example.test"})

	s.NoError(err)
	s.False(password.IsUsable(profile.Password))
	s.False(password.Verify(profile.Password, ""))
}

func (s *UserServiceTestSuite) TestCreateUserRequiresEmail() {
	_, err := s.service.CreateUser(context.Background(), CreateUserInput{})

	s.ErrorIs(err, ErrEmailRequired)
}

func (s *UserServiceTestSuite) TestCreateUserRequiresPublicSchema() {
	s.engine.current = "acme_1"

	_, err := s.service.CreateUser(context.Background(), CreateUserInput{Email: "new@example.test"})

	s.ErrorIs(err, ErrPublicSchemaRequired)
	s.mockProfile.AssertNotCalled(s.T(), "GetByEmail", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUserDuplicateActive() {
	existing := &domain.UserProfile{ID: "u1", Email: "new@example.test", IsActive: true}
	s.mockProfile.On("GetByEmail", mock.Anything, "new@example.test").Return(existing, nil).Once()

	_, err := s.service.CreateUser(context.Background(), CreateUserInput{Email: "new@example.test"})

	s.ErrorIs(err, ErrUserExists)
	s.mockProfile.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUserReactivatesInactiveProfile() {
	existing := &domain.UserProfile{ID: "u1", Email: "new@example.test", IsActive: false}
	s.mockProfile.On("GetByEmail", mock.Anything, "new@example.test").Return(existing, nil).Once()
	s.mockProfile.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.ID == "u1" && p.IsActive
	})).Return(nil).Once()
	s.expectPublicLink("u1")
	s.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	profile, err := s.service.CreateUser(context.Background(), CreateUserInput{Email: "new@example.test", Password: "s3cret"})

	s.NoError(err)
	s.Equal("u1", profile.ID)
	s.mockProfile.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateSuperuserPromotesPublicRecord() {
	perms := &domain.UserTenantPermissions{ID: 5, ProfileID: "u1"}

	s.mockProfile.On("GetByEmail", mock.Anything, "root@example.test").Return(nil, nil).Once()
	s.mockProfile.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		p.ID = "u1"
		return p.IsVerified
	})).Return(nil).Once()
	s.expectPublicLink("u1")
	s.mockPerms.On("Get", mock.Anything, "u1").Return(perms, nil).Once()
	s.mockPerms.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.UserTenantPermissions) bool {
		return p.IsStaff && p.IsSuperuser
	})).Return(nil).Once()
	s.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	profile, err := s.service.CreateSuperuser(context.Background(), "root@example.test", "s3cret")

	s.NoError(err)
	s.True(profile.IsVerified)
	s.mockPerms.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeleteUserProtectsPublicOwner() {
	owner := &domain.UserProfile{ID: "pub-owner", Email: "admin@example.test", IsActive: true}
	s.mockTenant.On("GetBySchemaName", mock.Anything, "public").Return(s.publicTenant, nil).Once()

	err := s.service.DeleteUser(context.Background(), owner)

	s.ErrorIs(err, ErrOwnerRemoval)
	s.mockProfile.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteUserUnwindsMemberships() {
	user := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}
	memberTenant := domain.Tenant{ID: "t2", SchemaName: "other_2", OwnerID: "someone-else"}
	perms := &domain.UserTenantPermissions{ID: 9, ProfileID: "u1"}

	s.mockTenant.On("GetBySchemaName", mock.Anything, "public").Return(s.publicTenant, nil).Once()
	s.mockProfile.On("ListTenants", mock.Anything, "u1").Return([]domain.Tenant{memberTenant}, nil).Once()

	// Plain membership: removed directly inside the tenant's schema.
	s.mockProfile.On("HasMembership", mock.Anything, "u1", "t2").Return(true, nil).Once()
	s.mockPerms.On("Get", mock.Anything, "u1").Return(perms, nil).Once()
	s.mockPerms.On("ClearGroups", mock.Anything, perms).Return(nil).Once()
	s.mockPerms.On("Delete", mock.Anything, perms).Return(nil).Once()
	s.mockProfile.On("RemoveMembership", mock.Anything, "u1", "t2").Return(nil).Once()

	s.mockProfile.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.ID == "u1" && !p.IsActive
	})).Return(nil).Once()
	s.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	err := s.service.DeleteUser(context.Background(), user)

	s.NoError(err)
	s.False(user.IsActive)
	s.Contains(s.engine.switches, "other_2")
	s.Equal("public", s.engine.CurrentSchema())
	s.mockProfile.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	hashed, err := password.Hash("s3cret")
	s.Require().NoError(err)
	profile := &domain.UserProfile{ID: "u1", Email: "user@example.test", Password: hashed, IsActive: true}

	s.mockProfile.On("GetByEmail", mock.Anything, "user@example.test").Return(profile, nil)

	got, err := s.service.Authenticate(context.Background(), "user@Example.test", "s3cret")
	s.NoError(err)
	s.Equal("u1", got.ID)

	_, err = s.service.Authenticate(context.Background(), "user@example.test", "wrong")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestAuthenticateInactive() {
	profile := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: false}
	s.mockProfile.On("GetByEmail", mock.Anything, "user@example.test").Return(profile, nil)

	_, err := s.service.Authenticate(context.Background(), "user@example.test", "anything")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestPermissionsInTenantSchema() {
	user := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}
	perms := &domain.UserTenantPermissions{ID: 3, ProfileID: "u1", IsStaff: true}

	s.mockProfile.On("GetByID", mock.Anything, "u1").Return(user, nil).Once()
	s.mockPerms.On("Get", mock.Anything, "u1").Return(perms, nil)
	s.mockPerms.On("GroupPermissions", mock.Anything, "u1").Return([]string{"tenants.view_tenant"}, nil).Once()

	summary, err := s.service.Permissions(context.Background(), "u1", "acme_1")

	s.NoError(err)
	s.Equal("acme_1", summary.TenantSchema)
	s.True(summary.IsMember)
	s.True(summary.IsStaff)
	s.False(summary.IsSuperuser)
	s.Equal([]string{"tenants.view_tenant"}, summary.Permissions)
	s.Contains(s.engine.switches, "acme_1")
	s.Equal("public", s.engine.CurrentSchema())
}

func (s *UserServiceTestSuite) TestPermissionsNonMember() {
	user := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}

	s.mockProfile.On("GetByID", mock.Anything, "u1").Return(user, nil).Once()
	s.mockPerms.On("Get", mock.Anything, "u1").Return(nil, nil).Once()

	summary, err := s.service.Permissions(context.Background(), "u1", "acme_1")

	s.NoError(err)
	s.False(summary.IsMember)
	s.False(summary.IsStaff)
	s.Empty(summary.Permissions)
}

func (s *UserServiceTestSuite) TestPermissionsDefaultsToPublicSchema() {
	user := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}

	s.mockProfile.On("GetByID", mock.Anything, "u1").Return(user, nil).Once()
	s.mockPerms.On("Get", mock.Anything, "u1").Return(nil, nil).Once()

	summary, err := s.service.Permissions(context.Background(), "u1", "")

	s.NoError(err)
	s.Equal("public", summary.TenantSchema)
}

func (s *UserServiceTestSuite) TestPermissionsUnknownUser() {
	s.mockProfile.On("GetByID", mock.Anything, "ghost").Return(nil, nil).Once()

	_, err := s.service.Permissions(context.Background(), "ghost", "acme_1")

	s.ErrorIs(err, ErrUserNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"User@Example.COM": "User@example.com",
		"plain":            "plain",
		"a@b@Example.ORG":  "a@b@example.org",
		"":                 "",
		"Upper@Sub.Domain": "Upper@sub.domain",
	}
	for in, want := range cases {
		if got := domain.NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnusablePasswordsNeverAuthenticate(t *testing.T) {
	marker := password.MakeUnusable()
	if password.Verify(marker, "") || password.Verify(marker, strings.TrimPrefix(marker, "!")) {
		t.Fatal("unusable password verified")
	}
}
