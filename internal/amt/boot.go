package amt

import (
	"fmt"
	"strings"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

// BootServiceName is the ElementName AMT reports for its boot service.
const BootServiceName = "Intel(r) AMT Boot Service"

const (
	bootSource     = "CIM_BootSourceSetting"
	bootConfig     = "CIM_BootConfigSetting"
	bootService    = "CIM_BootService"
	bootSettings   = "AMT_BootSettingData"
	bootConfigName = "Intel(r) AMT: Boot Configuration 0"

	bootRoleEnabled  = "1"
	bootRoleDisabled = "32768"
)

// Boot selects the medium used on the next boot.
type Boot struct {
	capability

	sources       []*wsman.Node
	sourcesLoaded bool
}

// Sources returns the supported boot sources. They are enumerated once and
// kept until Refresh.
func (b *Boot) Sources() ([]*wsman.Node, error) {
	if b.sourcesLoaded {
		return b.sources, nil
	}

	sources, err := b.walk(bootSource, nil)
	if err != nil {
		return nil, err
	}

	b.sources = sources
	b.sourcesLoaded = true

	return sources, nil
}

// Refresh drops the cached boot sources.
func (b *Boot) Refresh() {
	b.sources = nil
	b.sourcesLoaded = false
}

// mediumLabel returns the second to last colon separated segment of a
// StructuredBootString, e.g. "Hard-Disk" from
// "CIM:Hard-Disk:1".
func mediumLabel(structured string) string {
	parts := strings.Split(structured, ":")
	if len(parts) < 2 {
		return structured
	}

	return parts[len(parts)-2]
}

// SupportedMedia lists the media the device can boot from.
func (b *Boot) SupportedMedia() ([]string, error) {
	sources, err := b.Sources()
	if err != nil {
		return nil, err
	}

	media := make([]string, 0, len(sources))
	for _, s := range sources {
		media = append(media, mediumLabel(s.Child("StructuredBootString").Text()))
	}

	return media, nil
}

// SetMedium makes the next boot use the source whose StructuredBootString
// contains medium. The order change and the role activation are separate
// calls; a failure in the second leaves the first applied.
func (b *Boot) SetMedium(medium string) error {
	if medium == "" {
		return fmt.Errorf("%w: boot medium is empty", ErrLookup)
	}

	sources, err := b.Sources()
	if err != nil {
		return err
	}

	var instanceID string

	for _, s := range sources {
		if strings.Contains(s.Child("StructuredBootString").Text(), medium) {
			instanceID = s.Child("InstanceID").Text()

			break
		}
	}

	if instanceID == "" {
		return fmt.Errorf("%w: medium %q is not supported by the device", ErrLookup, medium)
	}

	config, err := b.setting(bootConfig, "InstanceID")
	if err != nil {
		return err
	}

	err = b.invoke(wsman.Invocation{
		Service:      bootConfig,
		Resource:     bootSource,
		AffectedItem: "Source",
		Method:       "ChangeBootOrder",
		Selector: &wsman.Selector{
			Name:  "InstanceID",
			Value: instanceID,
			Extra: config.Text(),
		},
	})
	if err != nil {
		return err
	}

	if err := b.SetBootConfigRole(true); err != nil {
		return err
	}

	b.log.Info("amt - next boot from %s", instanceID)

	return nil
}

// SetBootConfigRole activates or deactivates the AMT boot configuration.
func (b *Boot) SetBootConfigRole(enabled bool) error {
	role := bootRoleDisabled
	if enabled {
		role = bootRoleEnabled
	}

	name, err := b.setting(bootService, "ElementName")
	if err != nil {
		return err
	}

	if name.Text() != BootServiceName {
		return fmt.Errorf("%w: boot service is %q, expected %q", ErrUnexpectedService, name.Text(), BootServiceName)
	}

	return b.invoke(wsman.Invocation{
		Service:      bootService,
		Resource:     bootConfig,
		AffectedItem: "BootConfigSetting",
		Method:       "SetBootConfigRole",
		Selector:     &wsman.Selector{Name: "InstanceID", Value: bootConfigName},
		ArgsAfter:    []wsman.Arg{{Name: "Role", Value: role}},
	})
}

// Config returns the settings applied on the next boot.
func (b *Boot) Config() (*wsman.Node, error) {
	return b.get(bootSettings)
}
