package app

import (
	"github.com/vk/gridagentgo/internal/registry"
	"github.com/vk/gridagentgo/modules/shell"
	"github.com/vk/gridagentgo/modules/sleeper"
)

// coreModules is the definitive list of all runner modules compiled into
// the gridagent binary.
var coreModules = []registry.Module{
	&sleeper.Module{},
	&shell.Module{},
}
