package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

type xmlPresentation struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type xmlRelationships struct {
	Rels []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlSlide struct {
	// Show is "0" for a hidden slide.
	Show string   `xml:"show,attr"`
	Tree xmlGroup `xml:"cSld>spTree"`
}

func (s xmlSlide) hidden() bool {
	return s.Show == "0" || s.Show == "false"
}

// xmlGroup is a shape tree (spTree or grpSp). Children keep document order.
type xmlGroup struct {
	Shapes []xmlNode
}

type xmlNode struct {
	Sp    *xmlSp
	Group *xmlGroup
	Pic   *xmlPic
	Frame *xmlFrame
}

type xmlSp struct {
	NvSpPr struct {
		CNvSpPr struct {
			TxBox string `xml:"txBox,attr"`
		} `xml:"cNvSpPr"`
		NvPr struct {
			Ph *struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *xmlTextBody `xml:"txBody"`
}

type xmlPic struct {
	Blip struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blipFill>blip"`
}

type xmlFrame struct {
	Table *struct {
		Rows []struct {
			Cells []struct {
				TxBody xmlTextBody `xml:"txBody"`
			} `xml:"tc"`
		} `xml:"tr"`
	} `xml:"graphic>graphicData>tbl"`
}

type xmlTextBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

// xmlParagraph is the concatenated text of every run and field in an a:p,
// with line breaks kept.
type xmlParagraph struct {
	Text string
}

func (g *xmlGroup) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var node xmlNode
			switch t.Name.Local {
			case "sp":
				node.Sp = &xmlSp{}
				err = d.DecodeElement(node.Sp, &t)
			case "grpSp":
				node.Group = &xmlGroup{}
				err = d.DecodeElement(node.Group, &t)
			case "pic":
				node.Pic = &xmlPic{}
				err = d.DecodeElement(node.Pic, &t)
			case "graphicFrame":
				node.Frame = &xmlFrame{}
				err = d.DecodeElement(node.Frame, &t)
			case "AlternateContent":
				var alt struct {
					Fallback xmlGroup `xml:"Fallback"`
				}
				if err := d.DecodeElement(&alt, &t); err != nil {
					return err
				}
				g.Shapes = append(g.Shapes, alt.Fallback.Shapes...)
				continue
			default:
				err = d.Skip()
			}
			if err != nil {
				return err
			}
			if node != (xmlNode{}) {
				g.Shapes = append(g.Shapes, node)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *xmlParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth, inText := 0, 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				inText++
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = b.String()
				return nil
			}
			depth--
			if t.Name.Local == "t" {
				inText--
			}
		case xml.CharData:
			if inText > 0 {
				b.Write(t)
			}
		}
	}
}

func (b *xmlTextBody) text() string {
	if b == nil {
		return ""
	}
	lines := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}

func (s *xmlSp) placeholderType() string {
	if s.NvSpPr.NvPr.Ph == nil {
		return ""
	}
	return s.NvSpPr.NvPr.Ph.Type
}

func (s *xmlSp) isTitle() bool {
	switch s.placeholderType() {
	case "title", "ctrTitle":
		return true
	}
	return false
}

// isAutoShape reports whether s is a drawn shape rather than a placeholder
// or a plain text box.
func (s *xmlSp) isAutoShape() bool {
	return s.NvSpPr.NvPr.Ph == nil && s.NvSpPr.CNvSpPr.TxBox != "1"
}

// pptxPackage is an opened .pptx zip.
type pptxPackage struct {
	files map[string]*zip.File
}

func newPackage(r *zip.Reader) *pptxPackage {
	p := &pptxPackage{files: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		p.files[f.Name] = f
	}
	return p
}

func (p *pptxPackage) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *pptxPackage) decode(name string, v any) error {
	data, err := p.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// rels returns the relationships of part keyed by ID, with targets resolved
// to package paths. A part without a rels file has no relationships.
func (p *pptxPackage) rels(part string) (map[string]string, error) {
	relsPath := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	out := make(map[string]string)
	if _, ok := p.files[relsPath]; !ok {
		return out, nil
	}

	var rels xmlRelationships
	if err := p.decode(relsPath, &rels); err != nil {
		return nil, err
	}
	for _, r := range rels.Rels {
		if r.TargetMode == "External" {
			continue
		}
		out[r.ID] = resolveTarget(part, r.Target)
	}
	return out, nil
}

func resolveTarget(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(part), target)
}

// slideParts lists slide part names in presentation order.
func (p *pptxPackage) slideParts() ([]string, error) {
	const presentation = "ppt/presentation.xml"

	var pres xmlPresentation
	if err := p.decode(presentation, &pres); err != nil {
		return nil, err
	}
	rels, err := p.rels(presentation)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := rels[id.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", id.RID)
		}
		parts = append(parts, target)
	}
	return parts, nil
}
