package build

import "github.com/viant/sysml/model"

// StartMetadata begins assembling a `@Type { ... }` / `#Type` / `@Type;`
// usage. CurrentMetadataAddFeature and AddMetadataAbout append to it; one of
// EndMetadataAsPending or EndMetadataAsApplied finishes it. Starting a new
// one before ending the previous discards the unfinished usage, the same
// recovery posture as ClearPending.
func (c *Context) StartMetadata(typeRef model.QualifiedRef, loc model.Location) {
	c.currentMetadata = &model.MetadataUsage{TypeRef: typeRef, Location: loc}
}

// CurrentMetadataAddFeature appends a (name, value) pair to the metadata
// usage under assembly. A call with no usage under assembly is ignored.
func (c *Context) CurrentMetadataAddFeature(name, value string) {
	if c.currentMetadata == nil {
		return
	}
	c.currentMetadata.Features = append(c.currentMetadata.Features, model.MetadataFeature{Name: name, Value: value})
}

// AddMetadataAbout appends a `about <target>` reference to the metadata
// usage under assembly.
func (c *Context) AddMetadataAbout(target model.QualifiedRef) {
	if c.currentMetadata == nil {
		return
	}
	c.currentMetadata.About = append(c.currentMetadata.About, target)
}

// EndMetadataAsPending finishes the metadata usage under assembly and
// queues it as a prefix annotation for the next node BuildNode produces
// (the `@Type` / `#Type` shorthand written before a definition or usage).
func (c *Context) EndMetadataAsPending() {
	if c.currentMetadata == nil {
		return
	}
	c.pending.prefixAppliedMetadata = append(c.pending.prefixAppliedMetadata, c.currentMetadata)
	c.currentMetadata = nil
}

// EndMetadataAsApplied finishes the metadata usage under assembly and
// attaches it to the already-built node nodeID (metadata written inside a
// node's own body rather than as a prefix).
func (c *Context) EndMetadataAsApplied(nodeID string) {
	if c.currentMetadata == nil {
		return
	}
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.AppliedMetadata = append(n.AppliedMetadata, c.currentMetadata)
	}
	c.currentMetadata = nil
}
