package renderer

import (
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// InvalidLightID marks a failed light registration. Valid hardware
// light ids are 0..254.
const InvalidLightID uint8 = 255

// RegisterLight assigns a hardware id to the descriptor and stores it
// in the light table. Structurally identical descriptors share one id.
// Once all 255 ids are taken further registrations return
// InvalidLightID without disturbing the existing ones.
func (c *Context) RegisterLight(params metadata.LightParameters) uint8 {
	if id, ok := c.lightRegistry[params]; ok {
		return id
	}
	id := c.freeLightIDs.Acquire()
	if id < 0 {
		core.LogWarn("RegisterLight: all %d hardware light ids are in use", InvalidLightID)
		return InvalidLightID
	}
	c.lightRegistry[params] = uint8(id)
	if err := c.cache.SetParameter(ParameterLightData, uint32(id), params.Bytes()); err != nil {
		core.LogWarn("RegisterLight: storing light %d: %v", id, err)
	}
	return uint8(id)
}

// SetLight stores the descriptor under the given id, claiming the id
// from the free pool when it was not registered yet. Ids outside the
// hardware range are reported and ignored.
func (c *Context) SetLight(id uint8, params metadata.LightParameters) {
	if id >= InvalidLightID {
		core.LogWarn("SetLight: invalid light id %d", id)
		return
	}
	c.freeLightIDs.Claim(int(id))
	for old, oldID := range c.lightRegistry {
		if oldID == id {
			delete(c.lightRegistry, old)
			break
		}
	}
	c.lightRegistry[params] = id
	if err := c.cache.SetParameter(ParameterLightData, uint32(id), params.Bytes()); err != nil {
		core.LogWarn("SetLight: storing light %d: %v", id, err)
	}
}

// UnregisterLight returns the id to the free pool and drops it from the
// active set if it was enabled.
func (c *Context) UnregisterLight(id uint8) {
	if id >= InvalidLightID {
		core.LogWarn("UnregisterLight: invalid light id %d", id)
		return
	}
	c.DisableLight(id)
	for params, registered := range c.lightRegistry {
		if registered == id {
			delete(c.lightRegistry, params)
			c.freeLightIDs.Release(int(id))
			return
		}
	}
	core.LogWarn("UnregisterLight: light id %d is not registered", id)
}

// EnableLight registers the descriptor if needed and adds its id to the
// active light set. Returns the hardware id, or InvalidLightID when the
// pool is exhausted.
func (c *Context) EnableLight(params metadata.LightParameters) uint8 {
	id := c.RegisterLight(params)
	if id == InvalidLightID {
		return InvalidLightID
	}
	c.EnableLightID(id)
	return id
}

// EnableLightID adds a registered id to the active light set. Enabling
// an already active id is a no-op; exceeding the enabled-light limit is
// reported and ignored.
func (c *Context) EnableLightID(id uint8) {
	if !c.lightIDRegistered(id) {
		core.LogWarn("EnableLightID: light id %d is not registered", id)
		return
	}
	if c.activeLightSet.Contains(uint32(id)) {
		return
	}
	if c.activeLightSet.Count >= metadata.MaxEnabledLights {
		core.LogWarn("EnableLightID: already %d lights enabled, ignoring light %d", metadata.MaxEnabledLights, id)
		return
	}
	c.activeLightSet.Lights[c.activeLightSet.Count] = uint32(id)
	c.activeLightSet.Count++
}

// DisableLight removes an id from the active light set by swapping it
// with the last active slot. The id stays registered and can be
// re-enabled without a new registration.
func (c *Context) DisableLight(id uint8) {
	for i := uint32(0); i < c.activeLightSet.Count; i++ {
		if c.activeLightSet.Lights[i] == uint32(id) {
			c.activeLightSet.Count--
			c.activeLightSet.Lights[i] = c.activeLightSet.Lights[c.activeLightSet.Count]
			c.activeLightSet.Lights[c.activeLightSet.Count] = 0
			return
		}
	}
}

// LightEnabled reports whether the id is in the active light set.
func (c *Context) LightEnabled(id uint8) bool {
	return c.activeLightSet.Contains(uint32(id))
}

// EnabledLightCount returns the number of ids in the active light set.
func (c *Context) EnabledLightCount() uint32 {
	return c.activeLightSet.Count
}

func (c *Context) lightIDRegistered(id uint8) bool {
	if id >= InvalidLightID {
		return false
	}
	for _, registered := range c.lightRegistry {
		if registered == id {
			return true
		}
	}
	return false
}
