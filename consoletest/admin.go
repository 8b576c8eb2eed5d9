package consoletest

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/admin"
	"github.com/kbukum/consoleapi/util"
)

const (
	defaultProjectLimit = 3
	defaultStorageLimit = 25_000_000_000
)

func limitValue(amount int64) admin.LimitValue {
	return admin.LimitValue{Amount: amount, Bytes: util.FormatSize(amount)}
}

func (s *Server) registerAdmin(g *gin.RouterGroup) {
	g.POST("/users", s.addUser)
	g.GET("/users/:email", s.userInfo)
	g.PUT("/users/:email", s.updateUser)
	g.DELETE("/users/:email", s.deleteUser)

	g.POST("/projects", s.addProject)
	g.GET("/projects/:project", s.withProject(func(c *gin.Context, p admin.Project) {
		c.JSON(http.StatusOK, p)
	}))
	g.PUT("/projects/:project", s.withProject(s.renameProject))
	g.DELETE("/projects/:project", s.withProject(s.deleteProject))
	g.GET("/projects/:project/usage", s.withProject(s.projectUsage))
	g.GET("/projects/:project/limit", s.withProject(func(c *gin.Context, p admin.Project) {
		c.JSON(http.StatusOK, s.store.projectLimits(p.ID))
	}))
	g.PUT("/projects/:project/limit", s.withProject(s.putProjectLimit))
	g.POST("/projects/:project/limit", s.withProject(s.putProjectLimit))
	g.GET("/projects/:project/apikeys", s.withProject(func(c *gin.Context, p admin.Project) {
		c.JSON(http.StatusOK, s.store.listAPIKeys(p.ID))
	}))
	g.POST("/projects/:project/apikeys", s.withProject(s.addAPIKey))
	g.DELETE("/projects/:project/apikeys/:name", s.withProject(s.deleteAPIKeyByName))
	g.POST("/projects/:project/buckets/:bucket/geofence", s.withProject(s.createGeofence))
	g.GET("/projects/:project/buckets/:bucket/geofence", s.withProject(s.getGeofence))
	g.DELETE("/projects/:project/buckets/:bucket/geofence", s.withProject(s.deleteGeofence))
	g.DELETE("/apikeys/:apikey", s.deleteAPIKey)
}

// withProject resolves the :project parameter before calling next.
func (s *Server) withProject(next func(*gin.Context, admin.Project)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("project"))
		if err != nil {
			adminError(c, http.StatusBadRequest, "invalid project-uuid", err.Error())
			return
		}
		p, ok := s.store.project(id)
		if !ok {
			adminError(c, http.StatusNotFound, "project with specified uuid does not exist", "")
			return
		}
		next(c, p)
	}
}

func (s *Server) addUser(c *gin.Context) {
	var req admin.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		adminError(c, http.StatusBadRequest, "failed to unmarshal request", err.Error())
		return
	}
	switch {
	case req.Email == "":
		adminError(c, http.StatusBadRequest, "email is not set", "")
		return
	case req.Password == "":
		adminError(c, http.StatusBadRequest, "password is not set", "")
		return
	}

	u, ok := s.store.addAdminUser(req)
	if !ok {
		adminError(c, http.StatusConflict, "user with email already exists", req.Email)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) userInfo(c *gin.Context) {
	info, ok := s.store.adminUserInfo(c.Param("email"))
	if !ok {
		adminError(c, http.StatusNotFound, "user with given email does not exist", "")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) updateUser(c *gin.Context) {
	var req admin.UpdatedUser
	if err := c.ShouldBindJSON(&req); err != nil {
		adminError(c, http.StatusBadRequest, "failed to unmarshal request", err.Error())
		return
	}
	if !s.store.updateAdminUser(c.Param("email"), req) {
		adminError(c, http.StatusNotFound, "user with given email does not exist", "")
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteUser(c *gin.Context) {
	ok, owns := s.store.deleteAdminUser(c.Param("email"))
	switch {
	case !ok:
		adminError(c, http.StatusNotFound, "user with given email does not exist", "")
	case owns:
		adminError(c, http.StatusConflict, "user still owns projects", "")
	default:
		c.Status(http.StatusOK)
	}
}

func (s *Server) addProject(c *gin.Context) {
	var req admin.NewProject
	if err := c.ShouldBindJSON(&req); err != nil {
		adminError(c, http.StatusBadRequest, "failed to unmarshal request", err.Error())
		return
	}
	if req.ProjectName == "" {
		adminError(c, http.StatusBadRequest, "ProjectName is not set", "")
		return
	}
	p, ok := s.store.addProject(req)
	if !ok {
		adminError(c, http.StatusNotFound, "owner does not exist", req.OwnerID.String())
		return
	}
	c.JSON(http.StatusOK, admin.CreatedProject{ProjectID: p.ID})
}

func (s *Server) renameProject(c *gin.Context, p admin.Project) {
	var req admin.RenamedProject
	if err := c.ShouldBindJSON(&req); err != nil {
		adminError(c, http.StatusBadRequest, "failed to unmarshal request", err.Error())
		return
	}
	if req.ProjectName == "" {
		adminError(c, http.StatusBadRequest, "ProjectName is not set", "")
		return
	}
	s.store.renameProject(p.ID, req)
	c.Status(http.StatusOK)
}

func (s *Server) deleteProject(c *gin.Context, p admin.Project) {
	if len(s.store.listAPIKeys(p.ID)) > 0 {
		adminError(c, http.StatusConflict, "project has api keys", "")
		return
	}
	s.store.deleteProject(p.ID)
	c.Status(http.StatusOK)
}

func (s *Server) projectUsage(c *gin.Context, p admin.Project) {
	if s.store.projectHasUsage(p.ID) {
		adminError(c, http.StatusConflict, "usage for current month exists", "")
		return
	}
	c.JSON(http.StatusOK, admin.ProjectUsage{Result: "no project usage exist"})
}

func (s *Server) putProjectLimit(c *gin.Context, p admin.Project) {
	parse := func(name string) (*int64, bool) {
		raw := c.Query(name)
		if raw == "" {
			return nil, true
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			adminError(c, http.StatusBadRequest, "invalid "+name+" value", raw)
			return nil, false
		}
		return &v, true
	}

	usage, ok := parse("usage")
	if !ok {
		return
	}
	bandwidth, ok := parse("bandwidth")
	if !ok {
		return
	}
	rate, ok := parse("rate")
	if !ok {
		return
	}
	buckets, ok := parse("buckets")
	if !ok {
		return
	}
	s.store.updateProjectLimits(p.ID, usage, bandwidth, rate, buckets)
	c.Status(http.StatusOK)
}

func (s *Server) addAPIKey(c *gin.Context, p admin.Project) {
	var req admin.NewAPIKey
	if err := c.ShouldBindJSON(&req); err != nil {
		adminError(c, http.StatusBadRequest, "failed to unmarshal request", err.Error())
		return
	}
	if req.Name == "" {
		adminError(c, http.StatusBadRequest, "Name is not set", "")
		return
	}
	secret, ok := s.store.addAPIKey(p.ID, req.Name, s.config.Now())
	if !ok {
		adminError(c, http.StatusConflict, "api-key with given name already exists", req.Name)
		return
	}
	c.JSON(http.StatusOK, admin.CreatedAPIKey{APIKey: secret})
}

func (s *Server) deleteAPIKeyByName(c *gin.Context, p admin.Project) {
	if !s.store.deleteAPIKeyByName(p.ID, c.Param("name")) {
		adminError(c, http.StatusNotFound, "API key with specified name does not exist", "")
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteAPIKey(c *gin.Context) {
	if !s.store.deleteAPIKeySecret(c.Param("apikey")) {
		adminError(c, http.StatusNotFound, "API key does not exist", "")
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) createGeofence(c *gin.Context, p admin.Project) {
	region := c.Query("region")
	if region == "" {
		adminError(c, http.StatusBadRequest, "missing region query parameter", "")
		return
	}
	if !slices.Contains(admin.Regions, region) {
		adminError(c, http.StatusBadRequest, "unrecognized region code", "available: "+strings.Join(admin.Regions, ", "))
		return
	}
	b, ok := s.store.setPlacement(p.ID, c.Param("bucket"), region)
	if !ok {
		adminError(c, http.StatusBadRequest, "bucket does not exist", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) getGeofence(c *gin.Context, p admin.Project) {
	b, ok := s.store.bucket(p.ID, c.Param("bucket"))
	if !ok {
		adminError(c, http.StatusBadRequest, "bucket does not exist", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) deleteGeofence(c *gin.Context, p admin.Project) {
	b, ok := s.store.setPlacement(p.ID, c.Param("bucket"), "")
	if !ok {
		adminError(c, http.StatusBadRequest, "bucket does not exist", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Store) addAdminUser(req admin.NewUser) (admin.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(req.Email)
	if _, exists := s.adminUsers[key]; exists {
		return admin.User{}, false
	}
	u := admin.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        req.Email,
		ProjectLimit: defaultProjectLimit,
	}
	s.adminUsers[key] = u
	return u, true
}

func (s *Store) adminUserInfo(email string) (admin.UserInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.adminUsers[strings.ToLower(email)]
	if !ok {
		return admin.UserInfo{}, false
	}
	info := admin.UserInfo{User: u, Projects: []admin.Project{}}
	for _, p := range s.projects {
		if p.OwnerID == u.ID {
			info.Projects = append(info.Projects, p)
		}
	}
	slices.SortFunc(info.Projects, func(a, b admin.Project) int {
		return strings.Compare(a.Name, b.Name)
	})
	return info, true
}

func (s *Store) updateAdminUser(email string, req admin.UpdatedUser) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	u, ok := s.adminUsers[key]
	if !ok {
		return false
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.ShortName != "" {
		u.ShortName = req.ShortName
	}
	if req.ProjectLimit > 0 {
		u.ProjectLimit = req.ProjectLimit
	}
	if req.Email != "" && !strings.EqualFold(req.Email, email) {
		delete(s.adminUsers, key)
		u.Email = req.Email
		key = strings.ToLower(req.Email)
	}
	s.adminUsers[key] = u
	return true
}

func (s *Store) deleteAdminUser(email string) (found, ownsProjects bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	u, ok := s.adminUsers[key]
	if !ok {
		return false, false
	}
	for _, p := range s.projects {
		if p.OwnerID == u.ID {
			return true, true
		}
	}
	delete(s.adminUsers, key)
	return true, false
}

func (s *Store) addProject(req admin.NewProject) (admin.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := false
	for _, u := range s.adminUsers {
		if u.ID == req.OwnerID {
			owner = true
			break
		}
	}
	if !owner {
		return admin.Project{}, false
	}
	p := admin.Project{ID: uuid.New(), Name: req.ProjectName, OwnerID: req.OwnerID}
	s.projects[p.ID] = p
	s.limits[p.ID] = admin.ProjectLimits{
		Usage:      limitValue(defaultStorageLimit),
		Bandwidth:  limitValue(defaultStorageLimit),
		Rate:       admin.RateLimit{RPS: 100},
		MaxBuckets: 100,
	}
	return p, true
}

func (s *Store) project(id uuid.UUID) (admin.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

func (s *Store) renameProject(id uuid.UUID, req admin.RenamedProject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.projects[id]
	p.Name = req.ProjectName
	p.Description = req.Description
	s.projects[id] = p
}

func (s *Store) deleteProject(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	delete(s.limits, id)
	delete(s.usage, id)
}

func (s *Store) projectHasUsage(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage[id]
}

func (s *Store) projectLimits(id uuid.UUID) admin.ProjectLimits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits[id]
}

func (s *Store) updateProjectLimits(id uuid.UUID, usage, bandwidth, rate, buckets *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.limits[id]
	if usage != nil {
		l.Usage = limitValue(*usage)
	}
	if bandwidth != nil {
		l.Bandwidth = limitValue(*bandwidth)
	}
	if rate != nil {
		l.Rate = admin.RateLimit{RPS: int(*rate)}
	}
	if buckets != nil {
		l.MaxBuckets = int(*buckets)
	}
	s.limits[id] = l
}

func (s *Store) listAPIKeys(project uuid.UUID) []admin.APIKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := slices.Clone(s.apiKeys[project])
	if keys == nil {
		keys = []admin.APIKey{}
	}
	return keys
}

func (s *Store) addAPIKey(project uuid.UUID, name string, now time.Time) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.apiKeys[project] {
		if k.Name == name {
			return "", false
		}
	}
	key := admin.APIKey{ID: uuid.New(), ProjectID: project, Name: name, CreatedAt: now.UTC().Truncate(time.Second)}
	s.apiKeys[project] = append(s.apiKeys[project], key)
	secret := "1" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.apiKeySecret[secret] = key.ID
	return secret, true
}

func (s *Store) deleteAPIKeyByName(project uuid.UUID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.apiKeys[project]
	i := slices.IndexFunc(keys, func(k admin.APIKey) bool { return k.Name == name })
	if i < 0 {
		return false
	}
	s.removeKeyLocked(project, keys[i].ID)
	return true
}

func (s *Store) deleteAPIKeySecret(secret string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.apiKeySecret[secret]
	if !ok {
		return false
	}
	for project, keys := range s.apiKeys {
		if slices.ContainsFunc(keys, func(k admin.APIKey) bool { return k.ID == id }) {
			s.removeKeyLocked(project, id)
			break
		}
	}
	return true
}

func (s *Store) removeKeyLocked(project, id uuid.UUID) {
	s.apiKeys[project] = slices.DeleteFunc(s.apiKeys[project], func(k admin.APIKey) bool { return k.ID == id })
	for secret, kid := range s.apiKeySecret {
		if kid == id {
			delete(s.apiKeySecret, secret)
		}
	}
}

func (s *Store) bucket(project uuid.UUID, name string) (admin.Bucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucketKey(project, name)]
	return b, ok
}

func (s *Store) setPlacement(project uuid.UUID, name, region string) (admin.Bucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := bucketKey(project, name)
	b, ok := s.buckets[key]
	if !ok {
		return b, false
	}
	b.Placement = region
	s.buckets[key] = b
	return b, true
}
