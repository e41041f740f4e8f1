package category

import (
	"sort"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

// BuildTree links a flat list into a forest. Nodes whose parent is not in
// the list become roots. Siblings are ordered by sort_order, then name.
// The input nodes are modified in place.
func BuildTree(flat []*model.Category) []*model.Category {
	byID := make(map[string]*model.Category, len(flat))
	for _, c := range flat {
		c.Children = nil
		byID[c.ID] = c
	}

	var roots []*model.Category
	for _, c := range flat {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok && parent != c {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	sortSiblings(roots, map[string]bool{})
	return roots
}

func sortSiblings(nodes []*model.Category, seen map[string]bool) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].Slug < nodes[j].Slug
	})
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		sortSiblings(n.Children, seen)
	}
}

// Descendants returns rootID followed by the ids of its whole subtree, or nil
// when rootID is not in flat.
func Descendants(flat []*model.Category, rootID string) []string {
	children := map[string][]string{}
	found := false
	for _, c := range flat {
		if c.ID == rootID {
			found = true
		}
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	if !found {
		return nil
	}

	ids := []string{rootID}
	seen := map[string]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}

// Breadcrumb returns the path from the root down to id.
func Breadcrumb(flat []*model.Category, id string) []model.Crumb {
	byID := make(map[string]*model.Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	var path []model.Crumb
	seen := map[string]bool{}
	for cur, ok := byID[id]; ok && !seen[cur.ID]; {
		seen[cur.ID] = true
		path = append(path, model.Crumb{ID: cur.ID, Slug: cur.Slug, Name: cur.Name})
		if cur.ParentID == nil {
			break
		}
		cur, ok = byID[*cur.ParentID]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CreatesCycle reports whether re-parenting id under parentID would make a
// category its own ancestor.
func CreatesCycle(flat []*model.Category, id, parentID string) bool {
	if id == parentID {
		return true
	}
	for _, d := range Descendants(flat, id) {
		if d == parentID {
			return true
		}
	}
	return false
}

// FindNode searches a forest by id.
func FindNode(roots []*model.Category, id string) *model.Category {
	stack := append([]*model.Category(nil), roots...)
	seen := map[string]bool{}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return n
		}
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		stack = append(stack, n.Children...)
	}
	return nil
}
