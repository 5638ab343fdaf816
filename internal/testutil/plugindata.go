package testutil

import "github.com/go-lynx/wasplug/plugin"

// Plugin is a fake plugin.PluginData. ComponentFunc lets a test control what
// Component returns (a Component fake, or an error to exercise
// FailedToCompileComponent); a nil ComponentFunc yields an empty Component
// named after the plugin id.
type Plugin struct {
	IDValue       plugin.PluginID
	PlugValue     plugin.ContractID
	SocketsValue  []plugin.ContractID
	ComponentFunc func(plugin.Engine) (plugin.CompiledComponent, error)
	Err           error
}

func (p Plugin) ID() (plugin.PluginID, error) {
	if p.Err != nil {
		return plugin.PluginID{}, p.Err
	}
	return p.IDValue, nil
}

func (p Plugin) Plug() (plugin.ContractID, error) {
	if p.Err != nil {
		return plugin.ContractID{}, p.Err
	}
	return p.PlugValue, nil
}

func (p Plugin) Sockets() ([]plugin.ContractID, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.SocketsValue, nil
}

func (p Plugin) Component(eng plugin.Engine) (plugin.CompiledComponent, error) {
	if p.ComponentFunc != nil {
		return p.ComponentFunc(eng)
	}
	return Component{NameValue: p.IDValue.String()}, nil
}
