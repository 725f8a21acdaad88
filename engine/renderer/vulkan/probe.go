// Package vulkan checks whether the machine can create a Vulkan context. The
// viewer renders on the CPU; the probe backs the doctor command and the
// renderer.require_gpu setting.
package vulkan

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/heritage/engine/core"
)

type DeviceType string

const (
	DeviceTypeOther      DeviceType = "other"
	DeviceTypeIntegrated DeviceType = "integrated"
	DeviceTypeDiscrete   DeviceType = "discrete"
	DeviceTypeVirtual    DeviceType = "virtual"
	DeviceTypeCPU        DeviceType = "cpu"
)

type DeviceInfo struct {
	Name          string
	Type          DeviceType
	APIVersion    string
	DriverVersion string
}

// Probe creates a throwaway instance and lists the physical devices. Any
// failure is reported as core.ErrSetupFailure.
func Probe(appName string) ([]DeviceInfo, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize glfw: %w", core.ErrSetupFailure, err)
	}
	defer glfw.Terminate()

	if !glfw.VulkanSupported() {
		return nil, fmt.Errorf("%w: no Vulkan loader found", core.ErrSetupFailure)
	}
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return nil, fmt.Errorf("%w: GetInstanceProcAddress is nil", core.ErrSetupFailure)
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize vk: %w", core.ErrSetupFailure, err)
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Heritage"),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}
	if runtime.GOOS == "darwin" {
		extensions := []string{
			VulkanSafeString(vk.KhrPortabilityEnumerationExtensionName),
			VulkanSafeString(vk.KhrGetPhysicalDeviceProperties2ExtensionName),
		}
		createInfo.EnabledExtensionCount = uint32(len(extensions))
		createInfo.PpEnabledExtensionNames = extensions
	}

	var instance vk.Instance
	if err := checkResult("vkCreateInstance", vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return nil, err
	}
	defer vk.DestroyInstance(instance, nil)
	if err := vk.InitInstance(instance); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSetupFailure, err)
	}

	var count uint32
	if err := checkResult("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: no devices which support Vulkan were found", core.ErrSetupFailure)
	}
	devices := make([]vk.PhysicalDevice, count)
	if err := checkResult("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(instance, &count, devices)); err != nil {
		return nil, err
	}

	infos := make([]DeviceInfo, 0, count)
	for _, device := range devices[:count] {
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(device, &properties)
		properties.Deref()

		info := DeviceInfo{
			Name:          FixedString(properties.DeviceName[:]),
			Type:          deviceType(properties.DeviceType),
			APIVersion:    versionString(properties.ApiVersion),
			DriverVersion: versionString(properties.DriverVersion),
		}
		core.LogDebug("found device '%s' (%s), API %s", info.Name, info.Type, info.APIVersion)
		infos = append(infos, info)
	}
	return infos, nil
}

func deviceType(t vk.PhysicalDeviceType) DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return DeviceTypeIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return DeviceTypeDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return DeviceTypeVirtual
	case vk.PhysicalDeviceTypeCpu:
		return DeviceTypeCPU
	default:
		return DeviceTypeOther
	}
}

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d",
		vk.Version.Major(vk.Version(v)),
		vk.Version.Minor(vk.Version(v)),
		vk.Version.Patch(vk.Version(v)))
}
