package app

import (
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/modules/calendar"
	"github.com/AndrewRoe34/quick-sched-sub000/modules/console"
	"github.com/AndrewRoe34/quick-sched-sub000/modules/planner"
	"github.com/AndrewRoe34/quick-sched-sub000/modules/transfer"
)

// coreModules is the definitive list of all built-in modules that are
// compiled into the smpl binary.
var coreModules = []registry.Module{
	&console.Module{},
	&planner.Module{},
	&transfer.Module{},
	&calendar.Module{},
}
