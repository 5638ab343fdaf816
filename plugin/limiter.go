package plugin

// FixedFuelLimiter returns a FuelLimiter that applies defaultFuel to every
// call, except a function whose FunctionDescriptor.FuelBudget is non-nil,
// which overrides the default for that function specifically.
func FixedFuelLimiter(defaultFuel uint64) func(store Store, interfacePath, functionName string, descriptor FunctionDescriptor) uint64 {
	return func(_ Store, _, _ string, descriptor FunctionDescriptor) uint64 {
		if descriptor.FuelBudget != nil {
			return *descriptor.FuelBudget
		}
		return defaultFuel
	}
}

// FixedEpochLimiter returns an EpochLimiter that applies defaultTicks to
// every call, except a function whose FunctionDescriptor.EpochDeadline is
// non-nil, which overrides the default for that function specifically.
func FixedEpochLimiter(defaultTicks uint64) func(store Store, interfacePath, functionName string, descriptor FunctionDescriptor) uint64 {
	return func(_ Store, _, _ string, descriptor FunctionDescriptor) uint64 {
		if descriptor.EpochDeadline != nil {
			return *descriptor.EpochDeadline
		}
		return defaultTicks
	}
}
