package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/havenpaws/havensite"
)

// AdminLogin renders the login form, optionally with an inline error.
func AdminLogin(cfg havensite.SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Admin Login", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Admin login</h1>")
			if showError {
				buf.WriteString("<div class=\"flash error\">Invalid credentials</div>")
			}
			buf.WriteString("<form class=\"admin\" method=\"post\" action=\"/admin/login\">")
			csrfField(buf, csrfToken)
			buf.WriteString("<label for=\"username\">Username</label>")
			buf.WriteString("<input type=\"text\" id=\"username\" name=\"username\" required/>")
			buf.WriteString("<label for=\"password\">Password</label>")
			buf.WriteString("<input type=\"password\" id=\"password\" name=\"password\" required/>")
			buf.WriteString("<button type=\"submit\">Log in</button>")
			buf.WriteString("</form>")
		})
	})
}

// AdminPosts renders the post management list.
func AdminPosts(cfg havensite.SiteConfig, posts []*havensite.Post, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Manage Posts", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Posts</h1>")
			buf.WriteString("<p><a href=\"/admin/posts/new\">New post</a> · <a href=\"/admin/logout\">Log out</a></p>")
			if len(posts) == 0 {
				buf.WriteString("<p>No posts yet.</p>")
				return
			}
			buf.WriteString("<table class=\"admin-posts\"><thead><tr>")
			buf.WriteString("<th>Title</th><th>Slug</th><th>Date</th><th></th><th></th>")
			buf.WriteString("</tr></thead><tbody>")
			for _, p := range posts {
				buf.WriteString("<tr>")
				buf.WriteString("<td>" + esc(p.Title) + "</td>")
				buf.WriteString("<td>" + esc(p.Slug) + "</td>")
				buf.WriteString("<td>" + p.Date.Format("2006-01-02") + "</td>")
				buf.WriteString("<td><a href=\"/admin/posts/" + esc(p.Slug) + "/edit\">Edit</a></td>")
				buf.WriteString("<td><form method=\"post\" action=\"/admin/posts/" + esc(p.Slug) + "/delete\" ")
				buf.WriteString("onsubmit=\"return confirm('Delete this post and its images?')\">")
				csrfField(buf, csrfToken)
				buf.WriteString("<button type=\"submit\">Delete</button></form></td>")
				buf.WriteString("</tr>")
			}
			buf.WriteString("</tbody></table>")
		})
	})
}

// AdminNewPost renders the create form, including the request's outcome.
func AdminNewPost(cfg havensite.SiteConfig, form havensite.PostForm, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "New Post", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>New post</h1>")
			writeFlash(buf, form)
			buf.WriteString("<form class=\"admin\" method=\"post\" action=\"/admin/posts/new\" enctype=\"multipart/form-data\">")
			csrfField(buf, csrfToken)
			postFields(buf, "", form.Slug, "")
			buf.WriteString("<button type=\"submit\">Publish</button>")
			buf.WriteString("</form>")
			slugPreviewScript(buf)
		})
	})
}

// AdminEditPost renders the edit form for an existing post.
func AdminEditPost(cfg havensite.SiteConfig, post *havensite.Post, form havensite.PostForm, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Edit Post", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Edit post</h1>")
			writeFlash(buf, form)
			buf.WriteString("<form class=\"admin\" method=\"post\" action=\"/admin/posts/" + esc(post.Slug) + "/edit\" enctype=\"multipart/form-data\">")
			csrfField(buf, csrfToken)
			postFields(buf, post.Title, post.Slug, post.RawBody)
			buf.WriteString("<button type=\"submit\">Save changes</button>")
			buf.WriteString("</form>")
			slugPreviewScript(buf)
			buf.WriteString("<p><a href=\"/admin/posts\">&larr; Back to posts</a></p>")
		})
	})
}

// SlugField is the slug input fragment returned by the live slug preview.
func SlugField(slug string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeSlugField(buf, slug)
	})
}

func writeSlugField(buf *bytes.Buffer, slug string) {
	buf.WriteString("<div id=\"slug-field\">")
	buf.WriteString("<label for=\"slug\">Slug</label>")
	buf.WriteString("<input type=\"text\" id=\"slug\" name=\"slug\" value=\"" + esc(slug) + "\" placeholder=\"left blank, derived from title\"/>")
	buf.WriteString("</div>")
}

// slugPreviewScript refreshes the slug field from the title via the
// generate-slug fragment endpoint, but only while the slug is untouched.
func slugPreviewScript(buf *bytes.Buffer) {
	buf.WriteString("<script>")
	buf.WriteString("document.getElementById('title').addEventListener('change',function(){")
	buf.WriteString("var field=document.getElementById('slug-field');")
	buf.WriteString("if(field.querySelector('input').value!==''){return;}")
	buf.WriteString("var data=new FormData();")
	buf.WriteString("data.append('title',this.value);")
	buf.WriteString("data.append('_csrf',document.querySelector('input[name=_csrf]').value);")
	buf.WriteString("fetch('/admin/generate-slug',{method:'POST',body:data})")
	buf.WriteString(".then(function(r){return r.text();})")
	buf.WriteString(".then(function(html){field.outerHTML=html;});")
	buf.WriteString("});")
	buf.WriteString("</script>")
}

func postFields(buf *bytes.Buffer, title, slug, body string) {
	buf.WriteString("<label for=\"title\">Title</label>")
	buf.WriteString("<input type=\"text\" id=\"title\" name=\"title\" value=\"" + esc(title) + "\" required/>")
	writeSlugField(buf, slug)
	buf.WriteString("<label for=\"body\">Body (markdown)</label>")
	buf.WriteString("<textarea id=\"body\" name=\"body\">" + esc(body) + "</textarea>")
	buf.WriteString("<label for=\"images\">Images</label>")
	buf.WriteString("<input type=\"file\" id=\"images\" name=\"images\" multiple accept=\"image/*\"/>")
}

func writeFlash(buf *bytes.Buffer, form havensite.PostForm) {
	if form.Error != "" {
		buf.WriteString("<div class=\"flash error\">" + esc(form.Error) + "</div>")
		return
	}
	if !form.Success {
		return
	}
	buf.WriteString("<div class=\"flash success\">Saved. ")
	buf.WriteString("<a href=\"/news/" + esc(form.Slug) + "\">View post</a>")
	if len(form.SavedImages) > 0 {
		buf.WriteString("<ul>")
		for _, img := range form.SavedImages {
			buf.WriteString("<li>" + esc(img) + "</li>")
		}
		buf.WriteString("</ul>")
	}
	buf.WriteString("</div>")
}

func csrfField(buf *bytes.Buffer, token string) {
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(token) + "\"/>")
}
