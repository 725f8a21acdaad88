package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestVulkanSafeString(t *testing.T) {
	assert.Equal(t, "\x00", VulkanSafeString(""))
	assert.Equal(t, "heritage\x00", VulkanSafeString("heritage"))
	assert.Equal(t, "heritage\x00", VulkanSafeString("heritage\x00"))
}

func TestFixedString(t *testing.T) {
	var name [16]byte
	copy(name[:], "llvmpipe")
	assert.Equal(t, "llvmpipe", FixedString(name[:]))
	assert.Equal(t, "abc", FixedString([]byte("abc")))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "VK_SUCCESS", VulkanResultString(vk.Success, false))
	assert.Equal(t, "VK_ERROR_INCOMPATIBLE_DRIVER", VulkanResultString(vk.ErrorIncompatibleDriver, false))
	assert.Equal(t, "VK_ERROR_UNKNOWN", VulkanResultString(vk.ErrorDeviceLost, false))
	assert.NoError(t, checkResult("op", vk.Success))
	assert.ErrorIs(t, checkResult("vkCreateInstance", vk.ErrorIncompatibleDriver), core.ErrSetupFailure)
	assert.Equal(t, DeviceTypeDiscrete, deviceType(vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, "1.3.0", versionString(uint32(vk.MakeVersion(1, 3, 0))))
}
