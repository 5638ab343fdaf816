package plugin

// ResourceWrapper is the tagged pair (originating plugin id, raw guest
// handle) that is the only form in which a resource handle is allowed to
// cross a plugin boundary — the host never lets a plugin observe a raw
// handle that did not originate with it. It is stored in the
// *borrower* plugin's resource table, so its lifetime is bound to the
// receiving store rather than the originating one.
type ResourceWrapper struct {
	PluginID PluginID
	Handle   ResourceHandle
}
