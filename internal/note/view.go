package note

// ViewKind identifies which filter target the user is looking at.
type ViewKind int

const (
	// ViewAll shows every non-secret note.
	ViewAll ViewKind = iota
	// ViewCategory narrows to one public category.
	ViewCategory
	// ViewFolder narrows to one folder.
	ViewFolder
	// ViewVault shows only secret notes, behind the vault gate.
	ViewVault
)

// View is the active filter target: all notes, a category, a folder, or
// the private area. "All" is a selector only, never stored on a note.
type View struct {
	Kind     ViewKind
	Category Category
	FolderID string
}

func AllView() View                 { return View{Kind: ViewAll} }
func CategoryView(c Category) View  { return View{Kind: ViewCategory, Category: c} }
func FolderView(id string) View     { return View{Kind: ViewFolder, FolderID: id} }
func VaultView() View               { return View{Kind: ViewVault} }

// Label returns the display name of the view. Folder views render the
// folder name when it can be resolved, falling back to the id.
func (v View) Label(folders []Folder) string {
	switch v.Kind {
	case ViewCategory:
		return string(v.Category)
	case ViewFolder:
		for _, f := range folders {
			if f.ID == v.FolderID {
				return f.Name
			}
		}
		return v.FolderID
	case ViewVault:
		return "SECRET"
	default:
		return "ALL"
	}
}
