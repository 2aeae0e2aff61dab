package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fundflow/fundflow/cmd/cli/config"
	"github.com/fundflow/fundflow/cmd/cli/output"
	"github.com/spf13/cobra"
)

// ==========================
// Init Projects
// ==========================
func InitProjects(rootCmd *cobra.Command) {

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage fundraising projects",
	}

	projectsCmd.AddCommand(
		listProjectsCmd(),
		createProjectCmd(),
		donateCmd(),
	)

	rootCmd.AddCommand(projectsCmd)
}

type project struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Goal       float64 `json:"goal"`
	Raised     float64 `json:"raised"`
	Category   string  `json:"category"`
	OwnerName  string  `json:"ownerName"`
	Milestones []struct {
		Title   string  `json:"title"`
		Amount  float64 `json:"amount"`
		Reached bool    `json:"reached"`
	} `json:"milestones"`
}

// ==========================
// LIST
// ==========================
func listProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {

			resp, err := http.Get(config.APIURL() + "/projects")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var projects []project
			if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(projects))
			for _, p := range projects {
				reached := 0
				for _, m := range p.Milestones {
					if m.Reached {
						reached++
					}
				}
				rows = append(rows, []interface{}{
					p.ID, p.Title, p.OwnerName, p.Category,
					fmt.Sprintf("%.2f / %.2f", p.Raised, p.Goal),
					fmt.Sprintf("%d/%d", reached, len(p.Milestones)),
				})
			}

			output.RenderTable(
				[]string{"ID", "Title", "Owner", "Category", "Raised / Goal", "Milestones"},
				rows,
			)
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createProjectCmd() *cobra.Command {

	var title string
	var description string
	var category string
	var goal float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := map[string]interface{}{
				"title":       title,
				"description": description,
				"category":    category,
				"goal":        goal,
			}

			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", config.APIURL()+"/projects", bytes.NewBuffer(body))
			req.Header.Set("Authorization", token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			raw, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusCreated {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
			}

			var out any
			json.Unmarshal(raw, &out)
			pretty, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(pretty))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "project title")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&category, "category", "", "project category")
	cmd.Flags().Float64Var(&goal, "goal", 0, "funding goal")

	return cmd
}

// ==========================
// DONATE
// ==========================
func donateCmd() *cobra.Command {

	var id int
	var amount float64

	cmd := &cobra.Command{
		Use:   "donate",
		Short: "Donate to a project",
		RunE: func(cmd *cobra.Command, args []string) error {

			body, _ := json.Marshal(map[string]float64{"amount": amount})

			url := fmt.Sprintf("%s/projects/%d/donate", config.APIURL(), id)
			resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			raw, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
			}

			var out struct {
				Message string  `json:"message"`
				Project project `json:"project"`
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				return err
			}

			fmt.Printf("%s: %q raised %.2f of %.2f\n",
				out.Message, out.Project.Title, out.Project.Raised, out.Project.Goal)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "project id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to donate")

	return cmd
}
