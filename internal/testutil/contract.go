package testutil

import "github.com/go-lynx/wasplug/plugin"

// Contract is a fake plugin.ContractData. When Err is set, every accessor
// returns it, simulating a manifest source the core is expected to wrap as
// CorruptedContractManifest.
type Contract struct {
	IDValue          plugin.ContractID
	PackageNameValue string
	CardinalityValue plugin.Arity
	FunctionsValue   []plugin.FunctionDescriptor
	ResourcesValue   []string
	Err              error
}

func (c Contract) ID() (plugin.ContractID, error) {
	if c.Err != nil {
		return plugin.ContractID{}, c.Err
	}
	return c.IDValue, nil
}

func (c Contract) PackageName() (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.PackageNameValue, nil
}

func (c Contract) Cardinality() (plugin.Arity, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	return c.CardinalityValue, nil
}

func (c Contract) Functions() ([]plugin.FunctionDescriptor, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.FunctionsValue, nil
}

func (c Contract) Resources() ([]string, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.ResourcesValue, nil
}
