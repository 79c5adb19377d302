package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/zurichjs/rewards/internal/cache"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/security"
)

// BaseServiceTestSuite provides common setup for service tests: a debug
// logger, default configuration, an in-memory cache, and in-memory fakes
// for the external user store and coupon provider.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	logger     *logger.Logger
	config     *config.Configuration
	cache      cache.Cache
	tokenCodec security.TokenCodec

	userStore     *InMemoryUserStore
	couponGateway *InMemoryCouponGateway
	notifier      *CapturingNotifier
}

// SetupTest prepares fresh state before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	s.config = config.GetDefaultConfig()
	s.config.Referral.TokenSecret = "test-referral-secret"

	var err error
	s.logger, err = logger.NewLogger(s.config)
	s.Require().NoError(err)

	s.tokenCodec, err = security.NewTokenCodec(s.config)
	s.Require().NoError(err)

	s.cache = cache.NewInMemoryCache(s.config)
	s.userStore = NewInMemoryUserStore()
	s.couponGateway = NewInMemoryCouponGateway()
	s.notifier = NewCapturingNotifier()
}

// TearDownTest cleans up after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

// ClearStores resets the fakes and flushes the cache
func (s *BaseServiceTestSuite) ClearStores() {
	s.userStore.Clear()
	s.couponGateway.Clear()
	s.notifier.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetTokenCodec() security.TokenCodec {
	return s.tokenCodec
}

func (s *BaseServiceTestSuite) GetUserStore() *InMemoryUserStore {
	return s.userStore
}

func (s *BaseServiceTestSuite) GetCouponGateway() *InMemoryCouponGateway {
	return s.couponGateway
}

func (s *BaseServiceTestSuite) GetNotifier() *CapturingNotifier {
	return s.notifier
}
