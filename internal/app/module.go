package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/tiffinly/dabba/internal/app/api/server"
	"github.com/tiffinly/dabba/internal/app/service/dailymeal"
	"github.com/tiffinly/dabba/internal/app/service/order"
	"github.com/tiffinly/dabba/internal/app/service/ordergen"
	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/platform/db"
	"github.com/tiffinly/dabba/internal/platform/push"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	clock.Module,
	db.Module,
	push.Module,
	server.Module,
	subscription.Module,
	ordergen.Module,
	dailymeal.Module,
	order.Module,
)
