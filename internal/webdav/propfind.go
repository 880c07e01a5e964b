package webdav

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// propfindBody asks only for the properties the listing needs
const propfindBody = `<?xml version="1.0" encoding="utf-8"?>
<D:propfind xmlns:D="DAV:">
  <D:prop>
    <D:resourcetype/>
    <D:getcontentlength/>
  </D:prop>
</D:propfind>`

// The element tags below carry no namespace prefix on purpose:
// encoding/xml then matches local names only, which tolerates the D:,
// d: and lp1: prefixes different servers emit.
type multistatus struct {
	XMLName   xml.Name           `xml:"multistatus"`
	Responses []propfindResponse `xml:"response"`
}

type propfindResponse struct {
	Href      string     `xml:"href"`
	Propstats []propstat `xml:"propstat"`
}

type propstat struct {
	Status string       `xml:"status"`
	Prop   propfindProp `xml:"prop"`
}

// Content length decodes as text: servers report an empty element for
// collections, which must not fail the parse.
type propfindProp struct {
	ContentLength string       `xml:"getcontentlength"`
	ResourceType  resourceType `xml:"resourcetype"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}

// parseMultistatus extracts file entries from a PROPFIND multistatus
// body, preserving document order and skipping collection entries
// (including the requested directory itself)
func parseMultistatus(data []byte) ([]model.BackupFileInfo, error) {
	var ms multistatus
	if err := xml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("failed to parse multistatus response: %w", err)
	}

	files := make([]model.BackupFileInfo, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		prop, ok := successProp(resp.Propstats)
		if !ok || prop.ResourceType.Collection != nil {
			continue
		}

		name := filenameFromHref(resp.Href)
		if name == "" {
			continue
		}

		size, _ := strconv.ParseInt(strings.TrimSpace(prop.ContentLength), 10, 64)
		files = append(files, model.BackupFileInfo{
			Filename: name,
			Size:     size,
		})
	}
	return files, nil
}

// successProp returns the properties from the 200-status propstat
func successProp(stats []propstat) (propfindProp, bool) {
	for _, ps := range stats {
		if strings.Contains(ps.Status, "200") {
			return ps.Prop, true
		}
	}
	return propfindProp{}, false
}

// filenameFromHref extracts the percent-decoded last path segment
func filenameFromHref(href string) string {
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	if href == "" {
		return ""
	}
	name := path.Base(href)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "." || name == "/" {
		return ""
	}
	return name
}
